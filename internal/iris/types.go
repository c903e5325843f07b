package iris

import "strings"

type Config struct {
	Port              int    `json:"port"`
	PollingSpeed      int    `json:"pollingSpeed"`
	MessageRate       int    `json:"messageRate"`
	WebserverEndpoint string `json:"webserverEndpoint"`
}

// ReplyRequest is the body of POST /reply. Data holds text or a base64 image.
type ReplyRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data string `json:"data"`
}

const (
	ReplyTypeText  = "text"
	ReplyTypeImage = "image"
)

// Message is one chat event pushed over the Iris WebSocket.
type Message struct {
	Msg    string       `json:"msg"`
	Room   string       `json:"room"`
	Sender *string      `json:"sender,omitempty"`
	JSON   *MessageJSON `json:"json,omitempty"`
}

type MessageJSON struct {
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message,omitempty"`
	ChatID    string `json:"chat_id,omitempty"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (m *Message) SenderName() string {
	if m == nil || m.Sender == nil {
		return ""
	}
	return strings.TrimSpace(*m.Sender)
}

// ReplyTarget is the identifier replies must be posted to: the chat id when Iris
// provides one, the room name otherwise.
func (m *Message) ReplyTarget() string {
	if m == nil {
		return ""
	}
	if m.JSON != nil && m.JSON.ChatID != "" {
		return m.JSON.ChatID
	}
	return m.Room
}

type WebSocketState string

const (
	WSStateConnecting   WebSocketState = "CONNECTING"
	WSStateConnected    WebSocketState = "CONNECTED"
	WSStateDisconnected WebSocketState = "DISCONNECTED"
	WSStateReconnecting WebSocketState = "RECONNECTING"
	WSStateFailed       WebSocketState = "FAILED"
)

func (s WebSocketState) String() string {
	return string(s)
}
