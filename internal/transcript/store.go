package transcript

import "errors"

// ErrNotFound is returned when an entry ID is unknown.
var ErrNotFound = errors.New("transcript entry not found")

// Observer is notified synchronously after every append, in subscription
// order. Auto-scroll and similar UI side effects hang off this.
type Observer func(Entry)

// Store is the append-only conversation log. Entries are never edited or
// removed; insertion order is the sole ordering signal.
type Store interface {
	Append(entry Entry) error
	All() []Entry
	Get(id string) (Entry, error)
	Subscribe(obs Observer)
}
