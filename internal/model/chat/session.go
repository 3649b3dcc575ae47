package chat

import (
	"time"

	"github.com/safarly/backend/internal/model/persona"
)

// Phase describes where a session sits in its lifecycle.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseQueued     Phase = "queued"
	PhaseActive     Phase = "active"
	PhaseEnded      Phase = "ended"
)

// Snapshot is the read view of a session handed to HTTP clients. The persona
// pointer is nil until the session reaches the active phase.
type Snapshot struct {
	ID        string           `json:"id"`
	Phase     Phase            `json:"phase"`
	Persona   *persona.Persona `json:"persona,omitempty"`
	Messages  []Message        `json:"messages"`
	GuestName string           `json:"guestName,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
