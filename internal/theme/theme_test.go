package theme

import "testing"

func TestNewManagerDefaultsToDark(t *testing.T) {
	for _, raw := range []string{"", "midnight", "DARK"} {
		m := NewManager(raw)
		if m.Current() != Dark {
			t.Fatalf("initial %q: got %q", raw, m.Current())
		}
	}
	if m := NewManager("light"); m.Current() != Light {
		t.Fatalf("light init: got %q", m.Current())
	}
}

func TestToggle(t *testing.T) {
	m := NewManager("dark")
	if got := m.Toggle(); got != Light {
		t.Fatalf("first toggle: %q", got)
	}
	if got := m.Toggle(); got != Dark {
		t.Fatalf("second toggle: %q", got)
	}
	if m.Current() != Dark {
		t.Fatalf("current after toggles: %q", m.Current())
	}
}
