package wsclient

import (
	"encoding/json"

	wsmodels "campus-jobs-backend/models/ws"
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// ReadHandler marks a notification as read on behalf of the connected user
type ReadHandler func(userID, notificationID string) error

func NewClient(userID string, c *websocket.Conn, onRead ReadHandler) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
		onRead: onRead,
	}
}

type WsClient struct {
	conn   *websocket.Conn
	userID string
	onRead ReadHandler
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ws message reading failed")
			}
			return
		}
		c.handle(logger, data)
	}
}

func (c *WsClient) handle(logger *log.Entry, data []byte) {
	msg := wsmodels.ClientMessage{}
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.WithError(err).Debug("unknown ws message")
		return
	}
	switch msg.Type {
	case wsmodels.ClientMessageRead:
		if c.onRead == nil || msg.ID == "" {
			return
		}
		if err := c.onRead(c.userID, msg.ID); err != nil {
			logger.WithError(err).Warn("notification read mark failed")
		}
	case wsmodels.ClientMessagePing:
	default:
		logger.WithField("type", msg.Type).Debug("unknown ws message type")
	}
}
