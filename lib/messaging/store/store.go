package messagingstore

import (
	"strings"
	"time"

	"campus-jobs-backend/models"
	messageapimodels "campus-jobs-backend/models/api/message"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// CreateConversation stores the conversation together with its first message
	CreateConversation(rec dbmodels.Conversation, first dbmodels.Message) (id string, err error)
	GetConversation(id string) (rec *dbmodels.Conversation, err error)
	ListConversations(userID string, filter messageapimodels.ConversationFilter) (list []dbmodels.Conversation, err error)
	ListConversationsCount(userID string, filter messageapimodels.ConversationFilter) (rowCount int64, err error)
	UnreadCounts(userID string, conversationIDs []string) (counts map[string]int64, err error)
	// AddMessage stores the message, bumps last_message_at and restores an archived conversation
	AddMessage(rec dbmodels.Message) (id string, err error)
	GetMessage(id string) (rec *dbmodels.Message, err error)
	Messages(conversationID string) (list []dbmodels.Message, err error)
	MarkRead(conversationID, receiverID string, at time.Time) error
	SetArchived(id string, archived bool) error
	ManagerConversations(managerID string) (list []dbmodels.Conversation, err error)
	// MessagesByConversations returns messages grouped by conversation in chronological order
	MessagesByConversations(conversationIDs []string) (list []dbmodels.Message, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateConversation(rec dbmodels.Conversation, first dbmodels.Message) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return errors.Wrap(err, "conversation creation failed")
		}
		first.ConversationID = rec.ID
		if err := tx.Omit(clause.Associations).Create(&first).Error; err != nil {
			return errors.Wrap(err, "message creation failed")
		}
		return tx.
			Model(&dbmodels.Conversation{}).
			Where("id = ?", rec.ID).
			Update("last_message_at", first.CreatedAt).
			Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetConversation(id string) (*dbmodels.Conversation, error) {
	rec := dbmodels.Conversation{}
	err := i.db.
		Preload("Manager").
		Preload("Candidate").
		Preload("Job").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListConversations(userID string, filter messageapimodels.ConversationFilter) (list []dbmodels.Conversation, err error) {
	list = []dbmodels.Conversation{}
	tx := i.db.Model(&dbmodels.Conversation{})
	i.addFilter(tx, userID, filter)
	page, limit := filter.GetPage()
	err = tx.
		Preload("Manager").
		Preload("Candidate").
		Preload("Job").
		Order("last_message_at desc nulls last").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListConversationsCount(userID string, filter messageapimodels.ConversationFilter) (rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Conversation{})
	i.addFilter(tx, userID, filter)
	err = tx.Count(&rowCount).Error
	return rowCount, err
}

func (i impl) addFilter(tx *gorm.DB, userID string, filter messageapimodels.ConversationFilter) {
	tx.Where("(manager_id = ? OR candidate_id = ?)", userID, userID).
		Where("is_archived = ?", filter.Archived)
	if filter.Search != "" {
		tx.Where("LOWER(subject) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}

func (i impl) UnreadCounts(userID string, conversationIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(conversationIDs) == 0 {
		return counts, nil
	}
	type row struct {
		ConversationID string
		Cnt            int64
	}
	rows := []row{}
	err := i.db.
		Model(&dbmodels.Message{}).
		Select("conversation_id, count(*) as cnt").
		Where("conversation_id in (?)", conversationIDs).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("conversation_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.ConversationID] = r.Cnt
	}
	return counts, nil
}

func (i impl) AddMessage(rec dbmodels.Message) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return errors.Wrap(err, "message creation failed")
		}
		upd := tx.
			Model(&dbmodels.Conversation{}).
			Where("id = ?", rec.ConversationID).
			Updates(map[string]interface{}{
				"last_message_at": rec.CreatedAt,
				"is_archived":     false,
			})
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "conversation update failed")
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFound("conversation")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetMessage(id string) (*dbmodels.Message, error) {
	rec := dbmodels.Message{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Messages(conversationID string) (list []dbmodels.Message, err error) {
	list = []dbmodels.Message{}
	err = i.db.
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkRead(conversationID, receiverID string, at time.Time) error {
	return i.db.
		Model(&dbmodels.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).
		Error
}

func (i impl) SetArchived(id string, archived bool) error {
	return i.db.
		Model(&dbmodels.Conversation{}).
		Where("id = ?", id).
		Update("is_archived", archived).
		Error
}

func (i impl) ManagerConversations(managerID string) (list []dbmodels.Conversation, err error) {
	list = []dbmodels.Conversation{}
	err = i.db.
		Where("manager_id = ?", managerID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MessagesByConversations(conversationIDs []string) (list []dbmodels.Message, err error) {
	list = []dbmodels.Message{}
	if len(conversationIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Select("id, conversation_id, sender_id, receiver_id, created_at").
		Where("conversation_id in (?)", conversationIDs).
		Order("conversation_id, created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
