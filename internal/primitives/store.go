package primitives

import (
	"sort"
	"sync"
)

// EqualFunc reports whether two attribute values are the same for the
// purpose of change detection.
type EqualFunc func(a, b any) bool

// Store is a thread-safe attribute bag with change detection.
// A zero Store is not usable; create one with NewStore.
type Store struct {
	mu      sync.RWMutex
	data    map[string]any
	changed []string
	equal   EqualFunc
}

// NewStore creates an empty store. A nil eq selects Equal.
func NewStore(eq EqualFunc) *Store {
	if eq == nil {
		eq = Equal
	}
	return &Store{
		data:  make(map[string]any),
		equal: eq,
	}
}

// Load copies attrs into the store without change detection.
func (s *Store) Load(attrs map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range attrs {
		s.data[k] = v
	}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Lookup retrieves a value by key and reports whether it was present.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Apply writes every entry of patch and returns the sorted keys whose value
// differs from before the call. A key that was absent counts as changed even
// when written with nil. All entries are committed before Apply returns.
func (s *Store) Apply(patch map[string]any) []string {
	if len(patch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []string
	for k, v := range patch {
		old, existed := s.data[k]
		if !existed || !s.equal(old, v) {
			changed = append(changed, k)
		}
		s.data[k] = v
	}
	sort.Strings(changed)
	if len(changed) > 0 {
		s.changed = changed
	}
	return changed
}

// Changed returns the keys changed by the last effective Apply.
func (s *Store) Changed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.changed...)
}

// Keys returns the attribute names in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of attributes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Snapshot returns a copy of all attributes.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]any, len(s.data))
	for k, v := range s.data {
		snap[k] = v
	}
	return snap
}
