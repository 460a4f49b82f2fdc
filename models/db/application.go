package dbmodels

type JobApplication struct {
	BaseModel
	JobID       string             `gorm:"type:varchar(36);uniqueIndex:idx_job_candidate"`
	Job         *Job               `gorm:"foreignKey:JobID"`
	UserID      string             `gorm:"type:varchar(36);uniqueIndex:idx_job_candidate;index"`
	User        *User              `gorm:"foreignKey:UserID"`
	StatusID    string             `gorm:"type:varchar(36);index"`
	Status      *ApplicationStatus `gorm:"foreignKey:StatusID"`
	StageID     *string            `gorm:"type:varchar(36);index"`
	Stage       *HiringStage       `gorm:"foreignKey:StageID"`
	CoverLetter string
	Resume      string `gorm:"type:varchar(255)"` // storage object key
	ResumeName  string `gorm:"type:varchar(255)"`
	Notes       string
	IsFavorite  bool
	History     []ApplicationStageHistory `gorm:"foreignKey:ApplicationID"`
}

type ApplicationStageHistory struct {
	BaseModel
	ApplicationID string       `gorm:"type:varchar(36);index"`
	StageID       string       `gorm:"type:varchar(36);index"`
	Stage         *HiringStage `gorm:"foreignKey:StageID"`
	ChangedByID   *string      `gorm:"type:varchar(36)"`
	ChangedBy     *User        `gorm:"foreignKey:ChangedByID"`
	Notes         string
}
