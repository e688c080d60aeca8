package port

import (
	"context"
	"io"
)

// ArchiveObject is a document rendition to be archived.
type ArchiveObject struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ArchiveStorage stores exported documents in a single configured bucket.
type ArchiveStorage interface {
	Put(ctx context.Context, obj ArchiveObject) (location string, err error)
	PresignURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
