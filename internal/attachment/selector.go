// Package attachment holds at most one candidate spreadsheet between
// selection and submission. Validation is local and synchronous; a rejected
// candidate never displaces the file already held.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"insight-chat/internal/analysis"
	"insight-chat/internal/shared/storage/object"
)

// Extension is the only spreadsheet format the backend accepts.
const Extension = ".xlsx"

const storeNamespace = "attachments"

var (
	// ErrUnsupportedFile rejects candidates without the spreadsheet extension.
	ErrUnsupportedFile = errors.New("please upload an Excel (.xlsx) dataset")
	// ErrNoAttachment is returned when nothing is held.
	ErrNoAttachment = errors.New("no attachment held")
)

// Held describes the staged spreadsheet awaiting submission.
type Held struct {
	ID         string
	Name       string
	StorageKey string
	SizeBytes  int64
}

// Selector validates and stages candidate files. It keeps the raw bytes in
// the object store so a failed submission can be retried without re-attaching.
type Selector struct {
	store object.ObjectStore

	mu       sync.Mutex
	held     *Held
	dragging bool
}

// NewSelector constructs a Selector backed by the given object store.
func NewSelector(store object.ObjectStore) *Selector {
	return &Selector{store: store}
}

// Select validates a candidate by name and stages its bytes. On rejection or
// staging failure the previously held file, if any, is unchanged.
func (s *Selector) Select(ctx context.Context, name string, r io.Reader) (Held, error) {
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), Extension) {
		return Held{}, ErrUnsupportedFile
	}

	key, size, _, err := s.store.Save(ctx, storeNamespace, name, r)
	if err != nil {
		return Held{}, fmt.Errorf("stage attachment: %w", err)
	}

	held := Held{
		ID:         uuid.NewString(),
		Name:       name,
		StorageKey: key,
		SizeBytes:  size,
	}

	s.mu.Lock()
	s.held = &held
	s.mu.Unlock()
	return held, nil
}

// Held returns the currently staged file, if any.
func (s *Selector) Held() (Held, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held == nil {
		return Held{}, false
	}
	return *s.held, true
}

// Clear drops the held file. Called after a successful submission.
func (s *Selector) Clear() {
	s.mu.Lock()
	s.held = nil
	s.mu.Unlock()
}

// Payload reads the held file back into an outbound attachment. Returns
// (nil, nil) when nothing is held so the dispatch path stays uniform.
func (s *Selector) Payload(ctx context.Context) (*analysis.Attachment, error) {
	held, ok := s.Held()
	if !ok {
		return nil, nil
	}
	rc, err := s.store.Open(ctx, held.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open staged attachment: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read staged attachment: %w", err)
	}
	return &analysis.Attachment{Name: held.Name, Data: data}, nil
}

// BeginDrag marks a drag-over in progress. Purely a visual flag for whatever
// input adapter drives the selector.
func (s *Selector) BeginDrag() {
	s.mu.Lock()
	s.dragging = true
	s.mu.Unlock()
}

// EndDrag clears the drag flag.
func (s *Selector) EndDrag() {
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

// Dragging reports whether a drag is active.
func (s *Selector) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}
