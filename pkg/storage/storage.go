package storage

import (
	"context"
	"io"
)

// Provider encapsulates the artifact operations required by the site
// builder. Paths are slash-separated and relative to the provider root.
type Provider interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

// WriteRequest describes a single artifact write routed through a Provider.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    string
	ContentType string
	Checksum    string
	Metadata    map[string]string
}
