package messaginghandler

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"campus-jobs-backend/db"
	filestorage "campus-jobs-backend/lib/file-storage"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	messagingstore "campus-jobs-backend/lib/messaging/store"
	notificationhandler "campus-jobs-backend/lib/notification"
	usersstore "campus-jobs-backend/lib/users/store"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	"campus-jobs-backend/models"
	messageapimodels "campus-jobs-backend/models/api/message"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AttachmentFile is an uploaded message attachment, Reader is consumed on send
type AttachmentFile struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

type Provider interface {
	ListConversations(userID string, filter messageapimodels.ConversationFilter) (list []messageapimodels.ConversationView, rowCount int64, err error)
	StartConversation(ctx context.Context, managerID string, data messageapimodels.StartRequest, attachment *AttachmentFile) (id string, err error)
	Send(ctx context.Context, managerID, conversationID, body string, attachment *AttachmentFile) (id string, err error)
	Reply(ctx context.Context, candidateID, conversationID, body string, attachment *AttachmentFile) (id string, err error)
	// Messages lists the thread and marks messages addressed to userID as read
	Messages(userID, conversationID string) (list []messageapimodels.MessageView, err error)
	Archive(userID, conversationID string, archived bool) error
	ResponseMetrics(managerID string) (messageapimodels.ResponseMetrics, error)
	Attachment(ctx context.Context, userID, messageID string) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         messagingstore.NewInstance(db.DB),
		usersStore:    usersstore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		guard:         guard.Instance,
		notifications: notificationhandler.Instance,
		files:         filestorage.Instance,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"guard", instance.guard,
		"notifications", instance.notifications,
	)
	Instance = instance
}

type impl struct {
	store         messagingstore.Provider
	usersStore    usersstore.Provider
	jobStore      jobstore.Provider
	guard         guard.Provider
	notifications notificationhandler.Sink
	files         filestorage.Provider
	now           func() time.Time
}

const previewLength = 80

func (i impl) getLogger(userID, conversationID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if conversationID != "" {
		logger = logger.WithField("conversation_id", conversationID)
	}
	return logger
}

func (i impl) ListConversations(userID string, filter messageapimodels.ConversationFilter) (list []messageapimodels.ConversationView, rowCount int64, err error) {
	rowCount, err = i.store.ListConversationsCount(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) >= rowCount {
		return []messageapimodels.ConversationView{}, rowCount, nil
	}
	recList, err := i.store.ListConversations(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(recList))
	for _, rec := range recList {
		ids = append(ids, rec.ID)
	}
	unread, err := i.store.UnreadCounts(userID, ids)
	if err != nil {
		return nil, 0, err
	}
	list = make([]messageapimodels.ConversationView, 0, len(recList))
	for _, rec := range recList {
		view := messageapimodels.ConversationConvert(rec)
		view.UnreadCount = unread[rec.ID]
		list = append(list, view)
	}
	return list, rowCount, nil
}

func (i impl) StartConversation(ctx context.Context, managerID string, data messageapimodels.StartRequest, attachment *AttachmentFile) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	isCandidate, err := i.usersStore.HasRole(data.CandidateID, models.RoleCandidate)
	if err != nil {
		return "", errors.Wrap(err, "candidate loading failed")
	}
	if !isCandidate {
		return "", models.NewValidationError("candidate_id", "candidate not found")
	}
	var jobID *string
	if data.JobID != nil && *data.JobID != "" {
		job, err := i.jobStore.GetByID(*data.JobID)
		if err != nil {
			return "", errors.Wrap(err, "job loading failed")
		}
		if job == nil {
			return "", models.NewValidationError("job_id", "job not found")
		}
		if err = i.guard.CompanyAllowed(managerID, job.CompanyID); err != nil {
			return "", err
		}
		jobID = data.JobID
	}
	msg, err := i.newMessage(ctx, managerID, data.CandidateID, data.Body, attachment)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Conversation{
		ManagerID:   managerID,
		CandidateID: data.CandidateID,
		JobID:       jobID,
		Subject:     strings.TrimSpace(data.Subject),
	}
	id, err = i.store.CreateConversation(rec, msg)
	if err != nil {
		i.dropAttachment(ctx, msg)
		return "", err
	}
	logger := i.getLogger(managerID, id)
	logger.Info("conversation started")
	i.notifyReceiver(logger, id, managerID, msg)
	return id, nil
}

func (i impl) Send(ctx context.Context, managerID, conversationID, body string, attachment *AttachmentFile) (id string, err error) {
	conv, err := i.getConversation(conversationID)
	if err != nil {
		return "", err
	}
	if conv.ManagerID != managerID {
		return "", models.NewAccessDenied("the conversation belongs to another manager")
	}
	return i.post(ctx, conv, managerID, conv.CandidateID, body, attachment)
}

func (i impl) Reply(ctx context.Context, candidateID, conversationID, body string, attachment *AttachmentFile) (id string, err error) {
	conv, err := i.getConversation(conversationID)
	if err != nil {
		return "", err
	}
	if conv.CandidateID != candidateID {
		return "", models.NewAccessDenied("the conversation belongs to another candidate")
	}
	return i.post(ctx, conv, candidateID, conv.ManagerID, body, attachment)
}

func (i impl) post(ctx context.Context, conv *dbmodels.Conversation, senderID, receiverID, body string, attachment *AttachmentFile) (string, error) {
	if err := (messageapimodels.SendRequest{Body: body}).Validate(); err != nil {
		return "", err
	}
	msg, err := i.newMessage(ctx, senderID, receiverID, body, attachment)
	if err != nil {
		return "", err
	}
	msg.ConversationID = conv.ID
	id, err := i.store.AddMessage(msg)
	if err != nil {
		i.dropAttachment(ctx, msg)
		return "", err
	}
	logger := i.getLogger(senderID, conv.ID).WithField("message_id", id)
	logger.Info("message sent")
	i.notifyReceiver(logger, conv.ID, senderID, msg)
	return id, nil
}

func (i impl) newMessage(ctx context.Context, senderID, receiverID, body string, attachment *AttachmentFile) (dbmodels.Message, error) {
	msg := dbmodels.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       strings.TrimSpace(body),
	}
	msg.CreatedAt = i.now()
	if attachment == nil {
		return msg, nil
	}
	if attachment.Size > messageapimodels.AttachmentMaxSize {
		return msg, models.NewValidationError("attachment", "attachment must not exceed 10 MB")
	}
	if i.files == nil {
		return msg, models.NewPolicyError("file storage is not configured")
	}
	key, err := i.files.Upload(ctx, filestorage.FolderAttachment, senderID, attachment.Name, attachment.Reader, attachment.Size, attachment.ContentType)
	if err != nil {
		return msg, err
	}
	msg.Attachment = key
	msg.AttachmentName = attachment.Name
	return msg, nil
}

func (i impl) dropAttachment(ctx context.Context, msg dbmodels.Message) {
	if msg.Attachment == "" {
		return
	}
	if err := i.files.Delete(ctx, msg.Attachment); err != nil {
		log.WithError(err).WithField("key", msg.Attachment).Warn("orphan attachment cleanup failed")
	}
}

func (i impl) notifyReceiver(logger *log.Entry, conversationID, senderID string, msg dbmodels.Message) {
	senderName := models.SystemUser
	if sender, err := i.usersStore.GetByID(senderID); err == nil && sender != nil {
		senderName = sender.Name
	}
	data := models.GetNewMessage(conversationID, senderName, preview(msg.Body))
	if err := i.notifications.Send(msg.ReceiverID, data); err != nil {
		logger.WithError(err).Error("new message notification failed")
	}
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	return string([]rune(body)[:previewLength]) + "..."
}

func (i impl) getConversation(id string) (*dbmodels.Conversation, error) {
	conv, err := i.store.GetConversation(id)
	if err != nil {
		return nil, errors.Wrap(err, "conversation loading failed")
	}
	if conv == nil {
		return nil, models.NewNotFound("conversation")
	}
	return conv, nil
}

func (i impl) getParticipant(userID, id string) (*dbmodels.Conversation, error) {
	conv, err := i.getConversation(id)
	if err != nil {
		return nil, err
	}
	if conv.ManagerID != userID && conv.CandidateID != userID {
		return nil, models.NewAccessDenied("the user is not a participant of the conversation")
	}
	return conv, nil
}

func (i impl) Messages(userID, conversationID string) (list []messageapimodels.MessageView, err error) {
	if _, err = i.getParticipant(userID, conversationID); err != nil {
		return nil, err
	}
	recList, err := i.store.Messages(conversationID)
	if err != nil {
		return nil, err
	}
	if err = i.store.MarkRead(conversationID, userID, i.now()); err != nil {
		i.getLogger(userID, conversationID).WithError(err).Warn("messages read mark failed")
	}
	list = make([]messageapimodels.MessageView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, messageapimodels.MessageConvert(rec))
	}
	return list, nil
}

func (i impl) Archive(userID, conversationID string, archived bool) error {
	if _, err := i.getParticipant(userID, conversationID); err != nil {
		return err
	}
	return i.store.SetArchived(conversationID, archived)
}

func (i impl) ResponseMetrics(managerID string) (messageapimodels.ResponseMetrics, error) {
	convList, err := i.store.ManagerConversations(managerID)
	if err != nil {
		return messageapimodels.ResponseMetrics{}, err
	}
	threads := make([]thread, 0, len(convList))
	byID := map[string]int{}
	ids := make([]string, 0, len(convList))
	for k, conv := range convList {
		threads = append(threads, thread{managerID: conv.ManagerID, candidateID: conv.CandidateID})
		byID[conv.ID] = k
		ids = append(ids, conv.ID)
	}
	msgList, err := i.store.MessagesByConversations(ids)
	if err != nil {
		return messageapimodels.ResponseMetrics{}, err
	}
	for _, msg := range msgList {
		if k, ok := byID[msg.ConversationID]; ok {
			threads[k].messages = append(threads[k].messages, msg)
		}
	}
	return computeResponseMetrics(threads), nil
}

func (i impl) Attachment(ctx context.Context, userID, messageID string) (body []byte, fileName string, err error) {
	msg, err := i.store.GetMessage(messageID)
	if err != nil {
		return nil, "", err
	}
	if msg == nil || msg.Attachment == "" {
		return nil, "", models.NewNotFound("attachment")
	}
	if _, err = i.getParticipant(userID, msg.ConversationID); err != nil {
		return nil, "", err
	}
	if i.files == nil {
		return nil, "", models.NewPolicyError("file storage is not configured")
	}
	body, err = i.files.GetFile(ctx, msg.Attachment)
	if err != nil {
		return nil, "", err
	}
	fileName = msg.AttachmentName
	if fileName == "" {
		fileName = path.Base(msg.Attachment)
	}
	return body, fileName, nil
}
