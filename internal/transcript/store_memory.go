package transcript

import "sync"

// MemoryStore is the in-memory Store. Conversation history lives only for the
// lifetime of the process.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   []Entry
	byID      map[string]int
	observers []Observer
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

// Append adds an entry to the end of the log and notifies observers before
// returning, so dependent UI sees the append in the same tick.
func (s *MemoryStore) Append(entry Entry) error {
	s.mu.Lock()
	s.byID[entry.ID] = len(s.entries)
	s.entries = append(s.entries, entry)
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, obs := range observers {
		obs(entry)
	}
	return nil
}

// All returns the entries in insertion order.
func (s *MemoryStore) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given ID.
func (s *MemoryStore) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return s.entries[idx], nil
}

// Subscribe registers an observer for future appends.
func (s *MemoryStore) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}
