// Package theme holds the process-wide visual theme. It is initialized
// explicitly at application start and exposed to, but not owned by, the
// orchestration core.
package theme

import (
	"strings"
	"sync"
)

// Theme is a visual theme name.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Manager owns the current theme and its toggle operation.
type Manager struct {
	mu      sync.RWMutex
	current Theme
}

// NewManager constructs a Manager. Unrecognized initial values fall back to
// dark.
func NewManager(initial string) *Manager {
	t := Dark
	if strings.EqualFold(strings.TrimSpace(initial), string(Light)) {
		t = Light
	}
	return &Manager{current: t}
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Toggle flips the theme and returns the new value.
func (m *Manager) Toggle() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == Dark {
		m.current = Light
	} else {
		m.current = Dark
	}
	return m.current
}
