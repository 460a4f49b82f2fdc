package dbmodels

type Category struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	Slug       string `gorm:"type:varchar(255);uniqueIndex"`
	OrderIndex int
}

type HiringStage struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	OrderIndex int
	IsDefault  bool
	Color      string `gorm:"type:varchar(20)"`
}

type ApplicationStatus struct {
	BaseModel
	Name  string `gorm:"type:varchar(255)"`
	Slug  string `gorm:"type:varchar(255);uniqueIndex"`
	Order int    `gorm:"column:sort_order"`
	Color string `gorm:"type:varchar(20)"`
}
