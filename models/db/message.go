package dbmodels

import "time"

type Conversation struct {
	BaseModel
	ManagerID     string  `gorm:"type:varchar(36);index"`
	Manager       *User   `gorm:"foreignKey:ManagerID"`
	CandidateID   string  `gorm:"type:varchar(36);index"`
	Candidate     *User   `gorm:"foreignKey:CandidateID"`
	JobID         *string `gorm:"type:varchar(36);index"`
	Job           *Job    `gorm:"foreignKey:JobID"`
	Subject       string  `gorm:"type:varchar(255)"`
	IsArchived    bool
	LastMessageAt *time.Time
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"type:varchar(36);index"`
	SenderID       string `gorm:"type:varchar(36);index"`
	Sender         *User  `gorm:"foreignKey:SenderID"`
	ReceiverID     string `gorm:"type:varchar(36);index"`
	Body           string
	Attachment     string `gorm:"type:varchar(255)"`
	AttachmentName string `gorm:"type:varchar(255)"`
	IsRead         bool
	ReadAt         *time.Time
}
