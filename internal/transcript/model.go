package transcript

import (
	"time"

	"github.com/google/uuid"

	"insight-chat/internal/analysis"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Entry is one immutable conversation turn. Payload is set only on assistant
// entries that carry analysis data; failure entries carry narrative text only.
type Entry struct {
	ID        string
	Role      Role
	Content   string
	Payload   *analysis.Response
	CreatedAt time.Time
}

// NewEntry builds an entry with a fresh ID and creation timestamp.
func NewEntry(role Role, content string, payload *analysis.Response) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}
