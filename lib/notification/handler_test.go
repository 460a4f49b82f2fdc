package notificationhandler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"campus-jobs-backend/models"
	notificationapimodels "campus-jobs-backend/models/api/notification"
	dbmodels "campus-jobs-backend/models/db"
	wsmodels "campus-jobs-backend/models/ws"
	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	list    []dbmodels.Notification
	failing bool
}

func (f *fakeStore) Create(rec dbmodels.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", errors.New("db is down")
	}
	rec.ID = fmt.Sprintf("n%d", len(f.list)+1)
	f.list = append(f.list, rec)
	return rec.ID, nil
}

func (f *fakeStore) List(userID string, filter notificationapimodels.NotificationFilter) ([]dbmodels.Notification, error) {
	return f.list, nil
}

func (f *fakeStore) ListCount(userID string, filter notificationapimodels.NotificationFilter) (int64, error) {
	return int64(len(f.list)), nil
}

func (f *fakeStore) ListUnread(userID string, limit int) ([]dbmodels.Notification, error) {
	result := []dbmodels.Notification{}
	for _, rec := range f.list {
		if rec.UserID == userID && !rec.IsRead {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeStore) MarkRead(userID, id string) error { return nil }

func (f *fakeStore) MarkAllRead(userID string) error { return nil }

type fakeQueueStore struct {
	items []dbmodels.NotificationQueue
}

func (f *fakeQueueStore) InsertBatch(list []dbmodels.NotificationQueue) error {
	for _, item := range list {
		item.ID = fmt.Sprintf("q%d", len(f.items)+1)
		f.items = append(f.items, item)
	}
	return nil
}

func (f *fakeQueueStore) ListPending(limit, maxAttempts int) ([]dbmodels.NotificationQueue, error) {
	result := []dbmodels.NotificationQueue{}
	for _, item := range f.items {
		if item.Status == models.QueueStatusPending && item.Attempts < maxAttempts && len(result) < limit {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeQueueStore) MarkSent(id string) error {
	for k := range f.items {
		if f.items[k].ID == id {
			f.items[k].Status = models.QueueStatusSent
		}
	}
	return nil
}

func (f *fakeQueueStore) MarkFailed(id string, attempts int, errMsg string, final bool) error {
	for k := range f.items {
		if f.items[k].ID == id {
			f.items[k].Attempts = attempts
			f.items[k].LastErr = errMsg
			if final {
				f.items[k].Status = models.QueueStatusFailed
			}
		}
	}
	return nil
}

func (f *fakeQueueStore) Purge(before time.Time) (int64, error) { return 0, nil }

type fakeUsers struct {
	users      map[string]dbmodels.User
	candidates []string
}

func (f fakeUsers) GetByID(id string) (*dbmodels.User, error) {
	rec, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeUsers) GetByIDs(ids []string) ([]dbmodels.User, error) { return nil, nil }

func (f fakeUsers) ActiveCandidateIDs(afterID string, limit int) ([]string, error) {
	result := []string{}
	for _, id := range f.candidates {
		if id > afterID && len(result) < limit {
			result = append(result, id)
		}
	}
	return result, nil
}

func (f fakeUsers) HasRole(id string, roles ...models.UserRole) (bool, error) { return true, nil }

type fakeHub struct {
	connected map[string]bool
	sent      []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn)    {}
func (f *fakeHub) DeleteClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) IsConnected(userID string) bool                   { return f.connected[userID] }
func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) bool {
	f.sent = append(f.sent, msg)
	return true
}

func newTestHandler(users fakeUsers) (impl, *fakeStore, *fakeQueueStore, *fakeHub) {
	store := &fakeStore{}
	queue := &fakeQueueStore{}
	hub := &fakeHub{connected: map[string]bool{}}
	return impl{
		store:       store,
		queueStore:  queue,
		usersStore:  users,
		hub:         hub,
		batchSize:   2,
		maxAttempts: 3,
	}, store, queue, hub
}

func TestSendPersistsAndPushes(t *testing.T) {
	h, store, _, hub := newTestHandler(fakeUsers{users: map[string]dbmodels.User{
		"u1": {Name: "Ann", Email: "ann@campus.local"},
	}})
	hub.connected["u1"] = true
	data := models.GetApplicationStageChanged("app-1", "Intern", "Interview")
	require.NoError(t, h.Send("u1", data))
	require.Len(t, store.list, 1)
	require.Equal(t, models.ApplicationStageChanged, store.list[0].Code)
	require.Len(t, hub.sent, 1)
	require.Equal(t, "n1", hub.sent[0].NotificationID)
	require.Equal(t, "app-1", hub.sent[0].EntityID)
}

func TestSendUnknownUser(t *testing.T) {
	h, _, _, _ := newTestHandler(fakeUsers{users: map[string]dbmodels.User{}})
	require.Error(t, h.Send("ghost", models.GetApplicationAccepted("a", "Intern")))
}

func TestEnqueueActiveCandidatesBatches(t *testing.T) {
	h, _, queue, _ := newTestHandler(fakeUsers{candidates: []string{"c1", "c2", "c3", "c4", "c5"}})
	count, err := h.EnqueueActiveCandidates(models.GetJobCreated("job-1", "Intern", "Acme"))
	require.NoError(t, err)
	require.Equal(t, 5, count)
	require.Len(t, queue.items, 5)
	for _, item := range queue.items {
		require.Equal(t, models.QueueStatusPending, item.Status)
		require.Equal(t, models.JobCreated, item.Code)
	}
}

func TestDrainQueue(t *testing.T) {
	h, store, queue, _ := newTestHandler(fakeUsers{users: map[string]dbmodels.User{
		"c1": {Name: "C1"},
		"c2": {Name: "C2"},
	}})
	require.NoError(t, h.Enqueue([]string{"c1", "c2", "missing"}, models.GetJobCreated("job-1", "Intern", "Acme")))
	h.DrainQueue(context.Background())
	require.Len(t, store.list, 2)
	require.Equal(t, models.QueueStatusPending, queue.items[2].Status)
	require.Equal(t, 1, queue.items[2].Attempts)
	h.DrainQueue(context.Background())
	h.DrainQueue(context.Background())
	require.Len(t, store.list, 2)
	require.Equal(t, models.QueueStatusSent, queue.items[0].Status)
	require.Equal(t, models.QueueStatusSent, queue.items[1].Status)
	require.Equal(t, models.QueueStatusFailed, queue.items[2].Status)
	require.Equal(t, 3, queue.items[2].Attempts)
}

func TestPendingMessages(t *testing.T) {
	h, store, _, _ := newTestHandler(fakeUsers{users: map[string]dbmodels.User{"u1": {}}})
	store.list = []dbmodels.Notification{
		{BaseModel: dbmodels.BaseModel{ID: "n1"}, UserID: "u1", Code: models.NewMessage, Msg: "hi"},
		{BaseModel: dbmodels.BaseModel{ID: "n2"}, UserID: "u1", IsRead: true},
		{BaseModel: dbmodels.BaseModel{ID: "n3"}, UserID: "u2"},
	}
	list, err := h.PendingMessages("u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "n1", list[0].NotificationID)
}
