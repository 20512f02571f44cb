package store

import (
	"fmt"
	"sync"
)

// Manager hands out shared store handles, one per mode. Concurrent callers
// of Get resolve through a single in-flight open rather than racing
// separate opens, so a mode's database is opened exactly once per Manager.
type Manager struct {
	dir string

	mu      sync.Mutex
	handles map[Mode]*managed
}

type managed struct {
	once  sync.Once
	store *Store
	err   error
}

// NewManager creates a Manager rooted at dir. The directory must exist.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir, handles: make(map[Mode]*managed)}
}

// Get returns the shared handle for mode, opening it on first use.
// Every caller for a given mode receives the identical handle (or the
// identical open error).
func (m *Manager) Get(mode Mode) (*Store, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("store manager: unknown mode %q", mode)
	}

	m.mu.Lock()
	h, ok := m.handles[mode]
	if !ok {
		h = &managed{}
		m.handles[mode] = h
	}
	m.mu.Unlock()

	h.once.Do(func() {
		h.store, h.err = Open(m.dir, mode)
	})
	return h.store, h.err
}

// Close closes every opened handle. Safe to call once at shutdown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first error
	for mode, h := range m.handles {
		if h.store == nil {
			continue
		}
		if err := h.store.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s store: %w", mode, err)
		}
	}
	return first
}
