package companyapimodels

import (
	"net/mail"
	"strings"

	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
)

type CompanyData struct {
	Name        string `json:"name"`        // Company name
	Email       string `json:"email"`       // Contact e-mail
	Phone       string `json:"phone"`       // Contact phone
	Website     string `json:"website"`     // Site url
	Address     string `json:"address"`     // Address
	Description string `json:"description"` // About
	IsActive    *bool  `json:"is_active"`   // Company is visible to candidates
}

func (c CompanyData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return models.NewValidationError("name", "company name is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return models.NewValidationError("email", "invalid e-mail")
		}
	}
	return nil
}

type CompanyView struct {
	CompanyData
	ID        string        `json:"id"`
	IsActive  bool          `json:"is_active"`
	HasLogo   bool          `json:"has_logo"`
	Managers  []ManagerView `json:"managers,omitempty"`
	CreatedAt string        `json:"created_at"`
}

type ManagerView struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsPrimary bool   `json:"is_primary"`
}

func CompanyConvert(rec dbmodels.Company) CompanyView {
	result := CompanyView{
		CompanyData: CompanyData{
			Name:        rec.Name,
			Email:       rec.Email,
			Phone:       rec.Phone,
			Website:     rec.Website,
			Address:     rec.Address,
			Description: rec.Description,
		},
		ID:        rec.ID,
		IsActive:  rec.IsActive,
		HasLogo:   rec.Logo != "",
		CreatedAt: rec.CreatedAt.Format("2006-01-02"),
	}
	for _, link := range rec.Managers {
		m := ManagerView{
			UserID:    link.UserID,
			IsPrimary: link.IsPrimary,
		}
		if link.User != nil {
			m.Name = link.User.Name
			m.Email = link.User.Email
		}
		result.Managers = append(result.Managers, m)
	}
	return result
}

type ManagerRequest struct {
	UserID string `json:"user_id"` // Manager user id
}

func (r ManagerRequest) Validate() error {
	if r.UserID == "" {
		return models.NewValidationError("user_id", "manager is not specified")
	}
	return nil
}
