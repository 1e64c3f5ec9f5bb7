package ports

import (
	"context"
	"io"
)

// Document is an object read back from the document store. Callers close Body.
type Document struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// DocumentStore holds identity-document images.
type DocumentStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (*Document, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
