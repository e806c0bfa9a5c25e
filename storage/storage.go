package storage

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

var ErrStorageFailed = errors.New("storage operation failed")

// Item points at a stored file.
type Item struct {
	Path string
	URL  string
}

type Storage interface {
	Put(ctx context.Context, filename string, source io.Reader) (*Item, error)
}
