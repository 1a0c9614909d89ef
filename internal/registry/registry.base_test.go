package registry

import (
	"errors"
	"sync"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("activity_logs", "col-a")
	if err != nil || !isNew {
		t.Fatalf("expected new registration, got isNew=%v err=%v", isNew, err)
	}

	// Ghi đè item cũ
	isNew, err = r.Register("activity_logs", "col-b")
	if err != nil || isNew {
		t.Fatalf("expected overwrite, got isNew=%v err=%v", isNew, err)
	}

	item, exists := r.Get("activity_logs")
	if !exists || item != "col-b" {
		t.Errorf("Get = (%q, %v), want (col-b, true)", item, exists)
	}

	if _, exists := r.Get("missing"); exists {
		t.Error("expected missing key to not exist")
	}
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0
	creator := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		item, err := r.GetOrCreate("answer", creator)
		if err != nil || item != 42 {
			t.Fatalf("GetOrCreate = (%d, %v), want (42, nil)", item, err)
		}
	}
	if calls != 1 {
		t.Errorf("creator called %d times, want 1", calls)
	}
}

func TestGetOrCreate_CreatorError(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.GetOrCreate("broken", func() (int, error) {
		return 0, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected creator error to propagate")
	}
	if _, exists := r.Get("broken"); exists {
		t.Error("failed creation must not register an item")
	}
}

func TestClearWithCleanup(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("logs", "col")

	cleaned := ""
	deleted, err := r.Clear("logs", func(item string) error {
		cleaned = item
		return nil
	})
	if err != nil || !deleted {
		t.Fatalf("Clear = (%v, %v), want (true, nil)", deleted, err)
	}
	if cleaned != "col" {
		t.Errorf("cleanup received %q, want col", cleaned)
	}

	deleted, err = r.Clear("logs", nil)
	if err != nil || deleted {
		t.Errorf("clearing missing item = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	count, err := r.ClearAll(nil)
	if err != nil || count != 2 {
		t.Fatalf("ClearAll = (%d, %v), want (2, nil)", count, err)
	}
	if _, exists := r.Get("a"); exists {
		t.Error("expected registry to be empty after ClearAll")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, _ = r.Register("shared", n)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = r.Get("shared")
		}()
	}
	wg.Wait()

	if _, exists := r.Get("shared"); !exists {
		t.Error("expected item to exist after concurrent writes")
	}
}
