// Package datasource abstracts where validated bytes come from. The pipeline
// stages read through this seam so tests can substitute in-memory sources for
// real files.
package datasource

import (
	"context"
	"io"
)

// Source yields a fresh reader over the underlying data. Each pipeline stage
// that reads acquires its own reader and is responsible for closing it on
// every exit path.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
