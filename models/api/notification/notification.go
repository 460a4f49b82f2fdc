package notificationapimodels

import (
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	dbmodels "campus-jobs-backend/models/db"
)

type NotificationView struct {
	ID        string                  `json:"id"`
	Code      models.NotificationCode `json:"code"`
	Title     string                  `json:"title"`
	Msg       string                  `json:"msg"`
	EntityID  string                  `json:"entity_id,omitempty"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt string                  `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Code:      rec.Code,
		Title:     rec.Title,
		Msg:       rec.Msg,
		EntityID:  rec.EntityID,
		IsRead:    rec.IsRead,
		CreatedAt: rec.CreatedAt.Format(apimodels.DateTimeFormat),
	}
}

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"` // Only unread notifications
}
