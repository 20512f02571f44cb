package store

import (
	"sync"
	"testing"
)

func TestManager_SharesOneHandlePerMode(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.Close()

	a, err := m.Get(Live)
	if err != nil {
		t.Fatalf("Get(Live): %v", err)
	}
	b, err := m.Get(Live)
	if err != nil {
		t.Fatalf("second Get(Live): %v", err)
	}
	if a != b {
		t.Error("Get(Live) returned distinct handles")
	}

	sb, err := m.Get(Sandbox)
	if err != nil {
		t.Fatalf("Get(Sandbox): %v", err)
	}
	if sb == a {
		t.Error("live and sandbox share a handle")
	}
}

func TestManager_ConcurrentGetSharesOneOpen(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.Close()

	const callers = 16
	handles := make([]*Store, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := m.Get(Sandbox)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			handles[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("caller %d received a different handle", i)
		}
	}
}

func TestManager_UnknownMode(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.Close()

	if _, err := m.Get(Mode("qa")); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestManager_OpenErrorIsShared(t *testing.T) {
	m := NewManager("/nonexistent/dir")
	if _, err := m.Get(Live); err == nil {
		t.Fatal("expected open error")
	}
	// Second call must report the same failure, not re-race an open.
	if _, err := m.Get(Live); err == nil {
		t.Fatal("expected cached open error")
	}
}
