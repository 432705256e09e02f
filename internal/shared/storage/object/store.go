package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving and deleting
// binary objects. Delete exists so transient preview objects can be released
// exactly once when an attachment is removed or a session is cleared.
type ObjectStore interface {
	Save(ctx context.Context, ownerKey string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
