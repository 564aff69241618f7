package chat

import "errors"

var (
	// ErrEmptyQuery rejects blank submissions before anything is appended or
	// dispatched.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrBusy drops a submission attempted while another is in flight.
	ErrBusy = errors.New("a request is already in flight")
)
