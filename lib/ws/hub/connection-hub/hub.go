package connectionhub

import (
	"sync"

	wsmodels "campus-jobs-backend/models/ws"
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage) bool
	IsConnected(userID string) bool
}

// PendingLoader returns messages to replay for a freshly connected user
type PendingLoader func(userID string) ([]wsmodels.ServerMessage, error)

var Instance Provider

func Init(pending PendingLoader) {
	Instance = &impl{
		clients: map[string]*clientSession{},
		pending: pending,
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession // map[userID]
	pending PendingLoader
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	sess := newSession(conn)
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = sess
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	go i.sendPendingMessages(userID)
}

func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		i.mu.Unlock()
		return
	}
	delete(i.clients, userID)
	i.mu.Unlock()
	sess.stop()
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	return sess.enqueue(msg)
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	return ok && sess.conn != nil && sess.conn.Conn != nil
}

func (i *impl) sendPendingMessages(userID string) {
	if i.pending == nil {
		return
	}
	logger := log.WithField("user_id", userID)
	list, err := i.pending(userID)
	if err != nil {
		logger.WithError(err).Error("unread notifications loading failed")
		return
	}
	for _, msg := range list {
		if !i.IsConnected(userID) {
			return
		}
		msg.ToUserID = userID
		i.SendMessage(msg)
	}
}
