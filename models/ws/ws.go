package wsmodels

type ServerMessage struct {
	ToUserID       string `json:"-"`
	NotificationID string `json:"notification_id"`
	Time           string `json:"time"`
	Code           string `json:"code"`
	Title          string `json:"title"`
	Msg            string `json:"msg"`
	EntityID       string `json:"entity_id,omitempty"`
}

type ClientMessage struct {
	Type string `json:"type"` // ping/read
	ID   string `json:"id"`   // notification id for read
}

const (
	ClientMessagePing = "ping"
	ClientMessageRead = "read"
)
