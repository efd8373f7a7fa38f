package websocket

import "encoding/json"

const (
	EventReceiveMessage = "receive-message"
)

type MessageEventPayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type TypingEventPayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

type outgoingEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EncodeReceiveMessage builds the receive-message frame pushed to the
// recipient's room. The HTTP send path uses it too, so polling and live
// delivery stay wire-compatible.
func EncodeReceiveMessage(sender, receiver, content string) ([]byte, error) {
	return json.Marshal(outgoingEvent{
		Event: EventReceiveMessage,
		Data: MessageEventPayload{
			Sender:   sender,
			Receiver: receiver,
			Content:  content,
		},
	})
}

// EncodeTyping builds the transient composing signal; receivers clear it
// themselves after 3 seconds without a follow-up.
func EncodeTyping(sender, receiver string) ([]byte, error) {
	return json.Marshal(outgoingEvent{
		Event: EventTyping,
		Data: TypingEventPayload{
			Sender:   sender,
			Receiver: receiver,
		},
	})
}
