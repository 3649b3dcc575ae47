package chat

import "github.com/safarly/backend/internal/model/persona"

// EventType labels the session events pushed to the widget.
type EventType string

const (
	EventMessage  EventType = "message"
	EventDelivery EventType = "delivery"
	EventTyping   EventType = "typing"
	EventPhase    EventType = "phase"
)

// Event is a single state-machine notification. Exactly the fields relevant
// to the type are populated.
type Event struct {
	Type      EventType        `json:"type"`
	SessionID string           `json:"sessionId"`
	Message   *Message         `json:"message,omitempty"`
	MessageID string           `json:"messageId,omitempty"`
	Delivery  DeliveryState    `json:"delivery,omitempty"`
	Typing    bool             `json:"typing,omitempty"`
	Phase     Phase            `json:"phase,omitempty"`
	Persona   *persona.Persona `json:"persona,omitempty"`
}
