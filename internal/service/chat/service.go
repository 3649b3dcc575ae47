package chat

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/safarly/backend/internal/config"
	"github.com/safarly/backend/internal/model/chat"
	"github.com/safarly/backend/internal/model/persona"
	"github.com/safarly/backend/internal/service/ai"
	"github.com/safarly/backend/internal/service/settings"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session has ended")
	ErrEmptyMessage    = errors.New("message content is required")
)

// Task keys on the per-session scheduler. One key, one armed timer.
const (
	taskQueue  = "queue"
	taskIdle   = "idle"
	taskTyping = "typing"
)

// gatewayTimeout bounds a single upstream call; the session does not wait on
// it, replies just arrive late or not at all.
const gatewayTimeout = 30 * time.Second

// Responder produces reply text for a user message. It never fails: upstream
// errors are already converted to fallback text by the gateway client.
type Responder interface {
	Reply(ctx context.Context, req ai.Request) string
}

// session is the mutable state behind one widget open-to-close lifecycle.
// All fields are guarded by the Manager mutex; the scheduler has its own.
type session struct {
	id            string
	createdAt     time.Time
	lastActivity  time.Time
	phase         chat.Phase
	persona       *persona.Persona
	messages      []chat.Message
	guestName     string
	firstMessage  bool
	firstUserText string

	// generation guards every timer callback and in-flight gateway call:
	// anything tagged with a stale generation is discarded.
	generation uint64
	tasks      *taskScheduler

	// typing-reveal serialization: at most one reveal sequence runs; later
	// replies wait in pending. typingOn tracks whether the in-flight reveal
	// has shown the indicator, so cancel paths can hide it again.
	revealing bool
	typingOn  bool
	pending   []string

	subs    map[int]chan chat.Event
	nextSub int
}

// Manager runs the chat-agent state machines, one per open widget.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	personas persona.Store
	gateway  Responder
	store    *settings.Store
	cfg      settings.AgentSettings
	rng      *rand.Rand
	unsub    func()
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRand pins the randomness source used for persona selection and reveal
// jitter, so tests get deterministic picks.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// NewManager wires the state-machine service. It subscribes to the settings
// store and keeps a cached copy of the agent settings; call Stop to release
// the subscription.
func NewManager(personas persona.Store, gateway Responder, store *settings.Store, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		personas: personas,
		gateway:  gateway,
		store:    store,
		cfg:      store.Get(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(m)
	}

	updates, cancel := store.Subscribe()
	m.unsub = cancel
	go func() {
		for next := range updates {
			m.mu.Lock()
			m.cfg = next
			m.mu.Unlock()
		}
	}()

	return m
}

// Stop releases the settings subscription and tears down every session.
func (m *Manager) Stop() {
	m.unsub()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		m.teardownLocked(s)
		delete(m.sessions, id)
	}
}

// Open creates a fresh session: no messages, no persona, first message still
// pending. Reopening after a close always starts from this state.
func (m *Manager) Open(_ context.Context) chat.Snapshot {
	s := &session{
		id:           uuid.NewString(),
		createdAt:    time.Now().UTC(),
		lastActivity: time.Now().UTC(),
		phase:        chat.PhaseNotStarted,
		firstMessage: true,
		tasks:        newTaskScheduler(),
		subs:         make(map[int]chan chat.Event),
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	snap := snapshotLocked(s)
	m.mu.Unlock()

	return snap
}

// Snapshot returns the read view of a session.
func (m *Manager) Snapshot(_ context.Context, id string) (chat.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return chat.Snapshot{}, ErrSessionNotFound
	}
	return snapshotLocked(s), nil
}

// Submit feeds one user message into the state machine.
func (m *Manager) Submit(_ context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.phase == chat.PhaseEnded {
		return ErrSessionEnded
	}

	cfg := m.cfg
	offline := !cfg.Enabled || cfg.Credential == ""

	// History is the window before this message; collect it first.
	history := historyTurnsLocked(s)

	msg := m.appendLocked(s, chat.RoleUser, text, chat.DeliverySent)
	m.scheduleDeliveryLocked(s, msg.ID, cfg.Timing)
	s.lastActivity = time.Now().UTC()

	if s.firstMessage {
		s.firstMessage = false
		s.guestName = extractGuestName(text)
	}

	if offline {
		// An active conversation keeps its idle clock running even when the
		// agent drops offline mid-session.
		if s.phase == chat.PhaseActive {
			m.armIdleLocked(s, cfg.Timing)
		}
		m.appendLocked(s, chat.RoleSystem, offlineLine(cfg.Language), "")
		return nil
	}

	if s.phase == chat.PhaseNotStarted {
		// Covers the first message, and any later message on a session whose
		// earlier submissions only got the offline fallback: once the agent
		// is back online, the session enters the queue.
		s.firstUserText = text
		s.phase = chat.PhaseQueued
		m.emitLocked(s, chat.Event{Type: chat.EventPhase, Phase: s.phase})
		m.appendLocked(s, chat.RoleSystem, queuedLine(cfg.Language), "")

		gen := s.generation
		s.tasks.Schedule(taskQueue, cfg.Timing.QueueDelay, func() {
			m.assignAgent(id, gen)
		})
		return nil
	}

	if s.phase != chat.PhaseActive {
		// Still queued: the message is logged optimistically and will be
		// visible to the agent once assigned, but only the message that
		// entered the queue is forwarded on assignment.
		return nil
	}

	m.armIdleLocked(s, cfg.Timing)

	gen := s.generation
	p := *s.persona
	go m.requestReply(id, gen, text, history, p, cfg)
	return nil
}

// Close destroys the session: cancels every pending timer, drops subscriber
// channels and removes the session. In-flight gateway calls find nothing to
// append to.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	m.teardownLocked(s)
	delete(m.sessions, id)
	return nil
}

// Subscribe registers for the session's event feed. The cancel func releases
// the subscription; the channel is closed on session teardown.
func (m *Manager) Subscribe(id string) (<-chan chat.Event, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan chat.Event, 32)
	subID := s.nextSub
	s.nextSub++
	s.subs[subID] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if cur, ok := m.sessions[id]; ok && cur == s {
			if _, live := s.subs[subID]; live {
				delete(s.subs, subID)
				close(ch)
			}
		}
	}
	return ch, cancel, nil
}

// Sweep removes sessions with no activity for longer than maxAge. Active
// sessions idle that long have already ended via the idle timer; this evicts
// the carcasses plus abandoned never-started sessions. Returns the number
// removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	cutoff := time.Now().UTC().Add(-maxAge)
	for id, s := range m.sessions {
		if s.lastActivity.Before(cutoff) {
			m.teardownLocked(s)
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[chat] swept %d stale sessions", removed)
	}
	return removed
}

// ActiveTimers reports armed timer handles for a session. Test
// instrumentation.
func (m *Manager) ActiveTimers(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s.tasks.Active()
	}
	return 0
}

// --- timer callbacks -----------------------------------------------------

// assignAgent is the queue-timer callback: pick a persona, greet, and answer
// the original message.
func (m *Manager) assignAgent(id string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil || s.phase != chat.PhaseQueued {
		return
	}

	cfg := m.cfg
	p := m.personas.Pick(func(n int) int { return m.rng.Intn(n) })
	s.persona = &p
	s.phase = chat.PhaseActive
	m.emitLocked(s, chat.Event{Type: chat.EventPhase, Phase: s.phase, Persona: &p})
	m.appendLocked(s, chat.RoleSystem, connectedLine(cfg.Language, p), "")
	m.armIdleLocked(s, cfg.Timing)

	m.enqueueRevealLocked(s, greetingLine(cfg.Language, p, s.guestName), cfg.Timing)

	firstText := s.firstUserText
	s.firstUserText = ""
	go m.requestReply(id, gen, firstText, nil, p, cfg)
}

// requestReply performs the only true I/O suspension: the gateway call. The
// result is discarded unless the session still matches the generation that
// issued it.
func (m *Manager) requestReply(id string, gen uint64, text string, history []ai.Turn, p persona.Persona, cfg settings.AgentSettings) {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()

	reply := m.gateway.Reply(ctx, ai.Request{
		Credential:       cfg.Credential,
		Message:          text,
		PersonaName:      p.Name,
		PersonaLocalName: p.LocalName,
		Language:         cfg.Language,
		History:          history,
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil || s.phase != chat.PhaseActive {
		return
	}
	m.enqueueRevealLocked(s, reply, m.cfg.Timing)
}

// endIdle is the idle-timer callback: the session is over.
func (m *Manager) endIdle(id string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil || s.phase != chat.PhaseActive {
		return
	}

	// Pending reveals die with the conversation; delivery advancement keeps
	// running, it is cosmetic. A reveal caught between indicator-on and
	// message append must still hide the indicator.
	s.tasks.Cancel(taskTyping)
	s.pending = nil
	s.revealing = false
	if s.typingOn {
		s.typingOn = false
		m.emitLocked(s, chat.Event{Type: chat.EventTyping, Typing: false, Persona: s.persona})
	}

	s.phase = chat.PhaseEnded
	m.emitLocked(s, chat.Event{Type: chat.EventPhase, Phase: s.phase})
	m.appendLocked(s, chat.RoleSystem, farewellLine(m.cfg.Language, s.guestName), "")
}

// --- typing-reveal protocol ----------------------------------------------

// enqueueRevealLocked queues reply text behind any in-flight reveal. The
// single taskTyping key plus the pending list guarantee reveals never
// interleave.
func (m *Manager) enqueueRevealLocked(s *session, text string, timing config.AgentTiming) {
	s.pending = append(s.pending, text)
	if !s.revealing {
		m.startNextRevealLocked(s, timing)
	}
}

func (m *Manager) startNextRevealLocked(s *session, timing config.AgentTiming) {
	if len(s.pending) == 0 {
		s.revealing = false
		return
	}

	text := s.pending[0]
	s.pending = s.pending[1:]
	s.revealing = true

	id, gen := s.id, s.generation
	s.tasks.Schedule(taskTyping, timing.TypingStartDelay, func() {
		m.beginTyping(id, gen, text)
	})
}

func (m *Manager) beginTyping(id string, gen uint64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil || s.phase != chat.PhaseActive {
		return
	}

	s.typingOn = true
	m.emitLocked(s, chat.Event{Type: chat.EventTyping, Typing: true, Persona: s.persona})

	timing := m.cfg.Timing
	duration := revealDuration(text, timing)
	if timing.RevealJitterCap > 0 {
		duration += time.Duration(m.rng.Int63n(int64(timing.RevealJitterCap)))
	}

	s.tasks.Schedule(taskTyping, duration, func() {
		m.finishReveal(id, gen, text)
	})
}

func (m *Manager) finishReveal(id string, gen uint64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil || s.phase != chat.PhaseActive {
		return
	}

	s.typingOn = false
	m.emitLocked(s, chat.Event{Type: chat.EventTyping, Typing: false, Persona: s.persona})
	m.appendLocked(s, chat.RoleAgent, text, "")
	s.lastActivity = time.Now().UTC()

	timing := m.cfg.Timing
	m.armIdleLocked(s, timing)
	m.startNextRevealLocked(s, timing)
}

// revealDuration models how long a human would take to type text.
func revealDuration(text string, timing config.AgentTiming) time.Duration {
	words := len(strings.Fields(text))
	d := time.Duration(words) * timing.PerWord
	if d < timing.MinReveal {
		d = timing.MinReveal
	}
	if d > timing.MaxReveal {
		d = timing.MaxReveal
	}
	return d
}

// --- delivery-state advancement ------------------------------------------

func deliveryTaskKey(msgID string) string { return "delivery:" + msgID }

// scheduleDeliveryLocked arms the sent -> delivered -> read progression for
// one user message. It never blocks or reorders appends.
func (m *Manager) scheduleDeliveryLocked(s *session, msgID string, timing config.AgentTiming) {
	id, gen := s.id, s.generation
	readDelay := timing.ReadDelay
	s.tasks.Schedule(deliveryTaskKey(msgID), timing.DeliveredDelay, func() {
		m.advanceDelivery(id, gen, msgID, chat.DeliveryDelivered, readDelay)
	})
}

func (m *Manager) advanceDelivery(id string, gen uint64, msgID string, next chat.DeliveryState, readDelay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.liveSessionLocked(id, gen)
	if s == nil {
		return
	}

	for i := range s.messages {
		msg := &s.messages[i]
		if msg.ID != msgID {
			continue
		}
		if deliveryRank(next) <= deliveryRank(msg.DeliveryState) {
			return // never regress
		}
		msg.DeliveryState = next
		m.emitLocked(s, chat.Event{Type: chat.EventDelivery, MessageID: msgID, Delivery: next})
		break
	}

	if next == chat.DeliveryDelivered {
		s.tasks.Schedule(deliveryTaskKey(msgID), readDelay, func() {
			m.advanceDelivery(id, gen, msgID, chat.DeliveryRead, 0)
		})
	}
}

func deliveryRank(state chat.DeliveryState) int {
	switch state {
	case chat.DeliverySent:
		return 1
	case chat.DeliveryDelivered:
		return 2
	case chat.DeliveryRead:
		return 3
	}
	return 0
}

// --- locked helpers ------------------------------------------------------

// liveSessionLocked resolves a session only if it still matches the
// generation a callback was tagged with.
func (m *Manager) liveSessionLocked(id string, gen uint64) *session {
	s, ok := m.sessions[id]
	if !ok || s.generation != gen {
		return nil
	}
	return s
}

func (m *Manager) appendLocked(s *session, role chat.Role, content string, delivery chat.DeliveryState) chat.Message {
	msg := chat.Message{
		ID:            uuid.NewString(),
		SessionID:     s.id,
		Role:          role,
		Content:       content,
		DeliveryState: delivery,
		CreatedAt:     time.Now().UTC(),
	}
	s.messages = append(s.messages, msg)
	m.emitLocked(s, chat.Event{Type: chat.EventMessage, Message: &msg})
	return msg
}

func (m *Manager) armIdleLocked(s *session, timing config.AgentTiming) {
	id, gen := s.id, s.generation
	s.tasks.Schedule(taskIdle, timing.IdleTimeout, func() {
		m.endIdle(id, gen)
	})
}

// emitLocked fans an event out without blocking; a full subscriber loses the
// event rather than stalling the state machine.
func (m *Manager) emitLocked(s *session, ev chat.Event) {
	ev.SessionID = s.id
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// teardownLocked cancels every pending timer before state is cleared, so no
// orphaned transition can fire against a reset session.
func (m *Manager) teardownLocked(s *session) {
	s.generation++
	s.tasks.CancelAll()
	s.pending = nil
	s.revealing = false
	s.typingOn = false
	for subID, ch := range s.subs {
		delete(s.subs, subID)
		close(ch)
	}
}

func historyTurnsLocked(s *session) []ai.Turn {
	if len(s.messages) == 0 {
		return nil
	}
	turns := make([]ai.Turn, 0, len(s.messages))
	for _, msg := range s.messages {
		switch msg.Role {
		case chat.RoleUser:
			turns = append(turns, ai.Turn{Role: "user", Text: msg.Content})
		case chat.RoleAgent:
			turns = append(turns, ai.Turn{Role: "agent", Text: msg.Content})
		}
	}
	if len(turns) == 0 {
		return nil
	}
	return turns
}

func snapshotLocked(s *session) chat.Snapshot {
	snap := chat.Snapshot{
		ID:        s.id,
		Phase:     s.phase,
		GuestName: s.guestName,
		CreatedAt: s.createdAt,
		Messages:  make([]chat.Message, len(s.messages)),
	}
	copy(snap.Messages, s.messages)
	if s.persona != nil {
		p := *s.persona
		snap.Persona = &p
	}
	return snap
}
