package websocket

import (
	"encoding/json"
	"testing"
)

func TestEncodeReceiveMessage(t *testing.T) {
	frame, err := EncodeReceiveMessage("u-ali", "u-ayse", "selam")
	if err != nil {
		t.Fatal(err)
	}

	var envelope Envelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Event != EventReceiveMessage {
		t.Errorf("event = %q, want %q", envelope.Event, EventReceiveMessage)
	}

	var payload MessageEventPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Sender != "u-ali" || payload.Receiver != "u-ayse" || payload.Content != "selam" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestEncodeTyping(t *testing.T) {
	frame, err := EncodeTyping("u-ali", "u-ayse")
	if err != nil {
		t.Fatal(err)
	}

	var envelope Envelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Event != EventTyping {
		t.Errorf("event = %q, want %q", envelope.Event, EventTyping)
	}

	var payload TypingEventPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Sender != "u-ali" || payload.Receiver != "u-ayse" {
		t.Errorf("payload = %+v", payload)
	}
}

// Frames from the client parse back through the same envelope type the
// encoders produce, so the wire format stays symmetric.
func TestEnvelopeRoundTrip(t *testing.T) {
	raw := []byte(`{"event":"send-message","data":{"receiver":"u-ayse","content":"merhaba"}}`)

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Event != EventSendMessage {
		t.Fatalf("event = %q", envelope.Event)
	}

	var payload SendMessagePayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Receiver != "u-ayse" || payload.Content != "merhaba" {
		t.Errorf("payload = %+v", payload)
	}
}
