package chat

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// DeliveryState tracks the receipt progression of user-authored messages.
// It only ever advances sent -> delivered -> read.
type DeliveryState string

const (
	DeliverySent      DeliveryState = "sent"
	DeliveryDelivered DeliveryState = "delivered"
	DeliveryRead      DeliveryState = "read"
)

// Message is a single transcript entry. DeliveryState is set for user
// messages only; agent and system messages carry an empty value.
type Message struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"sessionId"`
	Role          Role          `json:"role"`
	Content       string        `json:"content"`
	DeliveryState DeliveryState `json:"deliveryState,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
