package notificationhandler

import (
	"context"
	"runtime/debug"
	"time"

	"campus-jobs-backend/config"
	"campus-jobs-backend/db"
	notificationqueuestore "campus-jobs-backend/lib/notification/queue-store"
	notificationstore "campus-jobs-backend/lib/notification/store"
	"campus-jobs-backend/lib/smtp"
	usersstore "campus-jobs-backend/lib/users/store"
	"campus-jobs-backend/lib/utils/helpers"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	connectionhub "campus-jobs-backend/lib/ws/hub/connection-hub"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	notificationapimodels "campus-jobs-backend/models/api/notification"
	dbmodels "campus-jobs-backend/models/db"
	wsmodels "campus-jobs-backend/models/ws"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Sink delivers one notification to one user
type Sink interface {
	Send(userID string, data models.NotificationData) error
}

// Queue defers delivery to the outbox worker
type Queue interface {
	// Enqueue stores one outbox row per user
	Enqueue(userIDs []string, data models.NotificationData) error
	// EnqueueActiveCandidates fans data out to every active candidate
	EnqueueActiveCandidates(data models.NotificationData) (count int, err error)
}

type Provider interface {
	Sink
	Queue
	DrainQueue(ctx context.Context)
	PurgeQueue(before time.Time) (int64, error)
	List(userID string, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	PendingMessages(userID string) ([]wsmodels.ServerMessage, error)
}

var Instance Provider

const (
	pendingReplayLimit = 50
	drainBatchSize     = 200
)

func NewHandler() {
	instance := impl{
		store:       notificationstore.NewInstance(db.DB),
		queueStore:  notificationqueuestore.NewInstance(db.DB),
		usersStore:  usersstore.NewInstance(db.DB),
		hub:         connectionhub.Instance,
		mailer:      smtp.Instance,
		batchSize:   config.Conf.Notification.QueueBatchSize,
		maxAttempts: config.Conf.Notification.MaxAttempts,
	}
	initchecker.CheckInit(
		"hub", instance.hub,
		"mailer", instance.mailer,
	)
	Instance = instance
}

type impl struct {
	store       notificationstore.Provider
	queueStore  notificationqueuestore.Provider
	usersStore  usersstore.Provider
	hub         connectionhub.Provider
	mailer      smtp.Provider
	batchSize   int
	maxAttempts int
}

func (i impl) getLogger(userID string, code models.NotificationCode) *log.Entry {
	logger := log.WithField("notification_code", code)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) Send(userID string, data models.NotificationData) error {
	logger := i.getLogger(userID, data.Code)
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return errors.Wrap(err, "user loading failed")
	}
	if user == nil {
		return errors.New("notification receiver not found")
	}
	rec := dbmodels.Notification{
		UserID:   userID,
		Code:     data.Code,
		Title:    data.Title,
		Msg:      data.Msg,
		EntityID: data.EntityID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return errors.Wrap(err, "notification saving failed")
	}
	if i.hub != nil && i.hub.IsConnected(userID) {
		i.hub.SendMessage(wsmodels.ServerMessage{
			ToUserID:       userID,
			NotificationID: id,
			Time:           time.Now().Format(apimodels.DateTimeFormat),
			Code:           string(data.Code),
			Title:          data.Title,
			Msg:            data.Msg,
			EntityID:       data.EntityID,
		})
	}
	if user.EmailNotifications && user.Email != "" && i.mailer != nil && i.mailer.IsConfigured() {
		go i.sendEmail(logger, user.Email, data)
	}
	return nil
}

func (i impl) sendEmail(logger *log.Entry, email string, data models.NotificationData) {
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	if err := i.mailer.SendEMail(email, data.Title, data.Msg); err != nil {
		logger.WithError(err).Warn("notification e-mail not sent")
	}
}

func (i impl) Enqueue(userIDs []string, data models.NotificationData) error {
	if len(userIDs) == 0 {
		return nil
	}
	batch := make([]dbmodels.NotificationQueue, 0, len(userIDs))
	for _, userID := range userIDs {
		batch = append(batch, dbmodels.NotificationQueue{
			UserID:   userID,
			Code:     data.Code,
			Title:    data.Title,
			Msg:      data.Msg,
			EntityID: data.EntityID,
			Status:   models.QueueStatusPending,
		})
	}
	if err := i.queueStore.InsertBatch(batch); err != nil {
		return errors.Wrap(err, "notification enqueue failed")
	}
	return nil
}

func (i impl) EnqueueActiveCandidates(data models.NotificationData) (count int, err error) {
	logger := i.getLogger("", data.Code)
	batchSize := i.batchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	afterID := ""
	for {
		ids, err := i.usersStore.ActiveCandidateIDs(afterID, batchSize)
		if err != nil {
			return count, errors.Wrap(err, "candidate list loading failed")
		}
		if len(ids) == 0 {
			break
		}
		if err = i.Enqueue(ids, data); err != nil {
			return count, err
		}
		count += len(ids)
		afterID = ids[len(ids)-1]
		if len(ids) < batchSize {
			break
		}
	}
	logger.WithField("count", count).Info("candidate notifications enqueued")
	return count, nil
}

// DrainQueue makes one delivery attempt for every pending outbox row
func (i impl) DrainQueue(ctx context.Context) {
	maxAttempts := i.maxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	seen := map[string]bool{}
	for {
		if helpers.IsContextDone(ctx) {
			return
		}
		list, err := i.queueStore.ListPending(drainBatchSize, maxAttempts)
		if err != nil {
			log.WithError(err).Error("notification queue loading failed")
			return
		}
		fresh := 0
		for _, item := range list {
			if seen[item.ID] {
				continue
			}
			if helpers.IsContextDone(ctx) {
				return
			}
			seen[item.ID] = true
			fresh++
			i.deliver(item, maxAttempts)
		}
		if fresh == 0 {
			return
		}
	}
}

func (i impl) deliver(item dbmodels.NotificationQueue, maxAttempts int) {
	logger := i.getLogger(item.UserID, item.Code).WithField("queue_id", item.ID)
	err := i.Send(item.UserID, item.Data())
	if err == nil {
		if err = i.queueStore.MarkSent(item.ID); err != nil {
			logger.WithError(err).Error("queue item update failed")
		}
		return
	}
	attempts := item.Attempts + 1
	final := attempts >= maxAttempts
	logger.WithError(err).WithField("attempts", attempts).Warn("notification delivery failed")
	if err = i.queueStore.MarkFailed(item.ID, attempts, err.Error(), final); err != nil {
		logger.WithError(err).Error("queue item update failed")
	}
}

func (i impl) PurgeQueue(before time.Time) (int64, error) {
	return i.queueStore.Purge(before)
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, notificationapimodels.NotificationConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) MarkRead(userID, id string) error {
	return i.store.MarkRead(userID, id)
}

func (i impl) MarkAllRead(userID string) error {
	return i.store.MarkAllRead(userID)
}

func (i impl) PendingMessages(userID string) ([]wsmodels.ServerMessage, error) {
	recList, err := i.store.ListUnread(userID, pendingReplayLimit)
	if err != nil {
		return nil, err
	}
	result := make([]wsmodels.ServerMessage, 0, len(recList))
	for _, rec := range recList {
		result = append(result, wsmodels.ServerMessage{
			ToUserID:       userID,
			NotificationID: rec.ID,
			Time:           rec.CreatedAt.Format(apimodels.DateTimeFormat),
			Code:           string(rec.Code),
			Title:          rec.Title,
			Msg:            rec.Msg,
			EntityID:       rec.EntityID,
		})
	}
	return result, nil
}
