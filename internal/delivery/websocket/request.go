package websocket

import "encoding/json"

// Envelope wraps every client frame: {"event": "...", "data": {...}}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	EventSendMessage = "send-message"
	EventTyping      = "typing"
)

type SendMessagePayload struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type TypingPayload struct {
	Receiver string `json:"receiver"`
}
