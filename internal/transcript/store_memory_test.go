package transcript

import (
	"errors"
	"testing"
)

func TestAppendPreservesOrder(t *testing.T) {
	s := NewMemoryStore()

	first := NewEntry(RoleUser, "first", nil)
	second := NewEntry(RoleAssistant, "second", nil)
	third := NewEntry(RoleUser, "third", nil)
	for _, e := range []Entry{first, second, third} {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Content != want {
			t.Fatalf("entry %d: got %q want %q", i, all[i].Content, want)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	entry := NewEntry(RoleUser, "original", nil)
	if err := s.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	snapshot := s.All()
	snapshot[0].Content = "mutated"

	if got := s.All()[0].Content; got != "original" {
		t.Fatalf("store entry mutated through snapshot: %q", got)
	}
}

func TestGet(t *testing.T) {
	s := NewMemoryStore()
	entry := NewEntry(RoleAssistant, "hello", nil)
	if err := s.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "hello" {
		t.Fatalf("unexpected content: %q", got.Content)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubscribeNotifiesSynchronously(t *testing.T) {
	s := NewMemoryStore()

	var seen []string
	s.Subscribe(func(e Entry) {
		seen = append(seen, e.Content)
	})

	if err := s.Append(NewEntry(RoleUser, "one", nil)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(NewEntry(RoleAssistant, "two", nil)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if len(seen) != 2 || seen[0] != "one" || seen[1] != "two" {
		t.Fatalf("observer saw %v", seen)
	}
}

func TestNewEntryAssignsIDAndTimestamp(t *testing.T) {
	a := NewEntry(RoleUser, "a", nil)
	b := NewEntry(RoleUser, "b", nil)
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}
