package dbmodels

type Company struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
	Website     string `gorm:"type:varchar(255)"`
	Address     string
	Description string
	Logo        string           `gorm:"type:varchar(255)"` // storage object key
	IsActive    bool             `gorm:"default:true"`
	Managers    []CompanyManager `gorm:"foreignKey:CompanyID"`
}

type CompanyManager struct {
	BaseModel
	CompanyID string   `gorm:"type:varchar(36);uniqueIndex:idx_company_manager"`
	Company   *Company `gorm:"foreignKey:CompanyID"`
	UserID    string   `gorm:"type:varchar(36);uniqueIndex:idx_company_manager;index"`
	User      *User    `gorm:"foreignKey:UserID"`
	IsPrimary bool
}
