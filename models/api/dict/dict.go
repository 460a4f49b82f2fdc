package dictapimodels

import dbmodels "campus-jobs-backend/models/db"

type HiringStageView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	IsDefault  bool   `json:"is_default"`
	Color      string `json:"color"`
}

func HiringStageConvert(rec dbmodels.HiringStage) HiringStageView {
	return HiringStageView{
		ID:         rec.ID,
		Name:       rec.Name,
		OrderIndex: rec.OrderIndex,
		IsDefault:  rec.IsDefault,
		Color:      rec.Color,
	}
}

type ApplicationStatusView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
	Color string `json:"color"`
}

func ApplicationStatusConvert(rec dbmodels.ApplicationStatus) ApplicationStatusView {
	return ApplicationStatusView{
		ID:    rec.ID,
		Name:  rec.Name,
		Slug:  rec.Slug,
		Order: rec.Order,
		Color: rec.Color,
	}
}

type CategoryView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	OrderIndex int    `json:"order_index"`
}

func CategoryConvert(rec dbmodels.Category) CategoryView {
	return CategoryView{
		ID:         rec.ID,
		Name:       rec.Name,
		Slug:       rec.Slug,
		OrderIndex: rec.OrderIndex,
	}
}
