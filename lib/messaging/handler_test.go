package messaginghandler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	companystore "campus-jobs-backend/lib/company/store"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	messagingstore "campus-jobs-backend/lib/messaging/store"
	usersstore "campus-jobs-backend/lib/users/store"
	"campus-jobs-backend/models"
	messageapimodels "campus-jobs-backend/models/api/message"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	messagingstore.Provider
	conversations map[string]*dbmodels.Conversation
	messages      []dbmodels.Message
}

func (f *fakeStore) CreateConversation(rec dbmodels.Conversation, first dbmodels.Message) (string, error) {
	rec.ID = fmt.Sprintf("conv%d", len(f.conversations)+1)
	at := first.CreatedAt
	rec.LastMessageAt = &at
	f.conversations[rec.ID] = &rec
	first.ConversationID = rec.ID
	f.messages = append(f.messages, first)
	return rec.ID, nil
}

func (f *fakeStore) GetConversation(id string) (*dbmodels.Conversation, error) {
	rec, ok := f.conversations[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *fakeStore) AddMessage(rec dbmodels.Message) (string, error) {
	rec.ID = fmt.Sprintf("msg%d", len(f.messages)+1)
	f.messages = append(f.messages, rec)
	conv := f.conversations[rec.ConversationID]
	at := rec.CreatedAt
	conv.LastMessageAt = &at
	conv.IsArchived = false
	return rec.ID, nil
}

func (f *fakeStore) Messages(conversationID string) ([]dbmodels.Message, error) {
	result := []dbmodels.Message{}
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (f *fakeStore) MarkRead(conversationID, receiverID string, at time.Time) error {
	for k := range f.messages {
		msg := &f.messages[k]
		if msg.ConversationID == conversationID && msg.ReceiverID == receiverID && !msg.IsRead {
			msg.IsRead = true
			msg.ReadAt = &at
		}
	}
	return nil
}

func (f *fakeStore) SetArchived(id string, archived bool) error {
	f.conversations[id].IsArchived = archived
	return nil
}

func (f *fakeStore) ManagerConversations(managerID string) ([]dbmodels.Conversation, error) {
	result := []dbmodels.Conversation{}
	for _, conv := range f.conversations {
		if conv.ManagerID == managerID {
			result = append(result, *conv)
		}
	}
	return result, nil
}

func (f *fakeStore) MessagesByConversations(ids []string) ([]dbmodels.Message, error) {
	result := []dbmodels.Message{}
	for _, msg := range f.messages {
		if guard.Contains(ids, msg.ConversationID) {
			result = append(result, msg)
		}
	}
	return result, nil
}

type fakeUsersStore struct {
	usersstore.Provider
}

func (f fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{Name: strings.ToUpper(id)}
	rec.ID = id
	return &rec, nil
}

func (f fakeUsersStore) HasRole(id string, roles ...models.UserRole) (bool, error) {
	return strings.HasPrefix(id, "c"), nil
}

type fakeJobStore struct {
	jobstore.Provider
}

func (f fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{CompanyID: "company1"}
	rec.ID = id
	return &rec, nil
}

type fakeCompanyStore struct {
	companystore.Provider
}

func (f fakeCompanyStore) ManagedCompanyIDs(managerID string) ([]string, error) {
	if managerID == "m1" {
		return []string{"company1"}, nil
	}
	return nil, nil
}

type fakeSink struct {
	sent map[string][]models.NotificationData
}

func (f *fakeSink) Send(userID string, data models.NotificationData) error {
	f.sent[userID] = append(f.sent[userID], data)
	return nil
}

func newHandler() (impl, *fakeStore, *fakeSink) {
	store := &fakeStore{conversations: map[string]*dbmodels.Conversation{}}
	sink := &fakeSink{sent: map[string][]models.NotificationData{}}
	clock := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return impl{
		store:         store,
		usersStore:    fakeUsersStore{},
		jobStore:      fakeJobStore{},
		guard:         guard.NewInstance(fakeCompanyStore{}),
		notifications: sink,
		now: func() time.Time {
			clock = clock.Add(10 * time.Minute)
			return clock
		},
	}, store, sink
}

func TestStartConversation(t *testing.T) {
	h, store, sink := newHandler()
	jobID := "job1"
	id, err := h.StartConversation(context.Background(), "m1", messageapimodels.StartRequest{
		CandidateID: "c1",
		JobID:       &jobID,
		Subject:     "Interview",
		Body:        "Hello, are you available on Friday?",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "c1", store.conversations[id].CandidateID)
	require.Len(t, store.messages, 1)
	require.Equal(t, "c1", store.messages[0].ReceiverID)
	require.Len(t, sink.sent["c1"], 1)
	require.Equal(t, models.NewMessage, sink.sent["c1"][0].Code)
	require.Equal(t, "New message from M1", sink.sent["c1"][0].Title)

	_, err = h.StartConversation(context.Background(), "m1", messageapimodels.StartRequest{
		CandidateID: "x1", Subject: "Hi", Body: "Hi",
	}, nil)
	var vErr models.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = h.StartConversation(context.Background(), "m2", messageapimodels.StartRequest{
		CandidateID: "c1", JobID: &jobID, Subject: "Hi", Body: "Hi",
	}, nil)
	require.ErrorIs(t, err, models.ErrAccessDenied)
}

func TestSendAndReply(t *testing.T) {
	h, store, sink := newHandler()
	id, err := h.StartConversation(context.Background(), "m1", messageapimodels.StartRequest{
		CandidateID: "c1", Subject: "Offer", Body: "We have news",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, h.Archive("m1", id, true))

	_, err = h.Reply(context.Background(), "c1", id, "Great, thanks!", nil)
	require.NoError(t, err)
	require.False(t, store.conversations[id].IsArchived)
	require.Len(t, sink.sent["m1"], 1)

	_, err = h.Send(context.Background(), "m2", id, "Not mine", nil)
	require.ErrorIs(t, err, models.ErrAccessDenied)
	_, err = h.Reply(context.Background(), "c2", id, "Not mine", nil)
	require.ErrorIs(t, err, models.ErrAccessDenied)
	_, err = h.Send(context.Background(), "m1", id, "   ", nil)
	var vErr models.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = h.Send(context.Background(), "m1", id, "See you on Friday", nil)
	require.NoError(t, err)
	require.Len(t, sink.sent["c1"], 2)

	list, err := h.Messages("c1", id)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, msg := range store.messages {
		if msg.ReceiverID == "c1" {
			require.True(t, msg.IsRead)
		} else {
			require.False(t, msg.IsRead)
		}
	}

	_, err = h.Messages("c2", id)
	require.ErrorIs(t, err, models.ErrAccessDenied)

	metrics, err := h.ResponseMetrics("m1")
	require.NoError(t, err)
	require.Equal(t, 1, metrics.TotalConversations)
	require.Equal(t, 1, metrics.Responded)
	require.Equal(t, 100.0, metrics.ResponseRate)
	require.Equal(t, 1, metrics.Distribution.UnderHour)
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", preview("short"))
	long := strings.Repeat("é", 100)
	require.Equal(t, strings.Repeat("é", previewLength)+"...", preview(long))
}

func TestAttachmentWithoutStorage(t *testing.T) {
	h, _, _ := newHandler()
	_, err := h.StartConversation(context.Background(), "m1", messageapimodels.StartRequest{
		CandidateID: "c1", Subject: "Docs", Body: "See attached",
	}, &AttachmentFile{Name: "contract.pdf", Reader: strings.NewReader("pdf"), Size: 3})
	var pErr models.PolicyError
	require.ErrorAs(t, err, &pErr)
}
