package persona

// Store exposes persona retrieval for the chat core and HTTP handlers.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
	// Pick returns the persona at index pick(n) where n is the roster size.
	// The index function is supplied by the caller so tests can pin the
	// selection.
	Pick(pick func(n int) int) Persona
}

// MemoryStore implements Store with an in-memory slice. The roster is copied
// on construction and never mutated afterwards.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns a copy of the roster.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Pick selects one persona using the supplied index function.
func (s *MemoryStore) Pick(pick func(n int) int) Persona {
	idx := pick(len(s.items))
	if idx < 0 || idx >= len(s.items) {
		idx = 0
	}
	return s.items[idx]
}
