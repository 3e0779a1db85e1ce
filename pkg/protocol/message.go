// Package protocol defines the websocket wire format between the
// browser runtime and live views.
package protocol

import "time"

// Kind identifies the direction and purpose of a message.
type Kind uint8

const (
	// KindEvent is a client interaction (click, input, submit, chord).
	KindEvent Kind = iota
	// KindRender carries a full HTML re-render to the client.
	KindRender
	// KindAlert carries a blocking error message to the client.
	KindAlert
	// KindHeartbeat keeps the connection alive.
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindRender:
		return "render"
	case KindAlert:
		return "alert"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Message is one frame on the live socket.
type Message struct {
	Kind    Kind           `json:"k" msgpack:"k"`
	Event   string         `json:"e,omitempty" msgpack:"e,omitempty"`
	Payload map[string]any `json:"p,omitempty" msgpack:"p,omitempty"`
	TS      int64          `json:"ts,omitempty" msgpack:"ts,omitempty"`
}

// Event builds a client event frame.
func Event(event string, payload map[string]any) Message {
	return Message{Kind: KindEvent, Event: event, Payload: payload, TS: now()}
}

// Render builds a full-render frame.
func Render(html string) Message {
	return Message{Kind: KindRender, Payload: map[string]any{"html": html}, TS: now()}
}

// Alert builds a blocking-alert frame.
func Alert(text string) Message {
	return Message{Kind: KindAlert, Payload: map[string]any{"text": text}, TS: now()}
}

func now() int64 {
	return time.Now().UnixMilli()
}
