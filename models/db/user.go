package dbmodels

import "campus-jobs-backend/models"

type Role struct {
	BaseModel
	Slug models.UserRole `gorm:"type:varchar(50);uniqueIndex"`
	Name string          `gorm:"type:varchar(255)"`
}

type User struct {
	BaseModel
	Name               string `gorm:"type:varchar(255)"`
	Email              string `gorm:"type:varchar(255);uniqueIndex"`
	Phone              string `gorm:"type:varchar(50)"`
	RoleID             string `gorm:"type:varchar(36);index"`
	Role               *Role  `gorm:"foreignKey:RoleID"`
	IsActive           bool   `gorm:"default:true"`
	EmailNotifications bool   `gorm:"default:true"`
}
