package object

import (
	"context"
	"io"
)

// ObjectStore stages binary objects: held attachments awaiting submission and
// exported CSV files. Storage keys are opaque to callers.
type ObjectStore interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
