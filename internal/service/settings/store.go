package settings

import (
	"sync"

	"github.com/safarly/backend/internal/config"
)

// AgentSettings is the runtime-mutable configuration of the chat agent. The
// admin console replaces it wholesale; readers always get a copy.
type AgentSettings struct {
	Enabled    bool               `json:"enabled"`
	Credential string             `json:"credential"`
	Language   string             `json:"language"`
	Timing     config.AgentTiming `json:"timing"`
}

// Store holds the current agent settings and notifies subscribers on every
// update. Updates follow last-write-wins semantics; slow subscribers miss
// intermediate values rather than blocking the writer.
type Store struct {
	mu      sync.RWMutex
	current AgentSettings
	subs    map[int]chan AgentSettings
	nextID  int
}

// NewStore seeds the store from configuration defaults.
func NewStore(cfg config.AgentConfig, credential string) *Store {
	return &Store{
		current: AgentSettings{
			Enabled:    cfg.Enabled,
			Credential: credential,
			Language:   cfg.Language,
			Timing:     cfg.Timing,
		},
		subs: make(map[int]chan AgentSettings),
	}
}

// Get returns the current settings.
func (s *Store) Get() AgentSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the settings and fans the new value out to subscribers.
func (s *Store) Update(next AgentSettings) {
	s.mu.Lock()
	s.current = next
	subs := make([]chan AgentSettings, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- next:
		default:
			// Drop rather than block. A stalled subscriber keeps its older
			// buffered values and misses this one; it only catches up when a
			// later update finds buffer room.
		}
	}
}

// Subscribe registers for update notifications. The returned cancel func
// must be called to release the subscription.
func (s *Store) Subscribe() (<-chan AgentSettings, func()) {
	ch := make(chan AgentSettings, 4)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}
