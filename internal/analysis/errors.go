package analysis

import "errors"

var (
	// ErrSchema indicates a response body that does not conform to the
	// analysis response schema.
	ErrSchema = errors.New("malformed analysis response")
	// ErrUnavailable indicates a non-success status from the analysis service.
	ErrUnavailable = errors.New("the analysis service is temporarily unavailable")
)
