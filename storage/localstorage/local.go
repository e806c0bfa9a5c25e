package localstorage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"suzurigw/storage"
)

const defaultDir = "tmp"

type Config struct {
	Dir string
}

// LocalStorage writes files to a directory on disk. It is the default
// backend and matches where the uploads endpoint advertises its files.
type LocalStorage struct {
	dir string
}

func New(cfg Config) *LocalStorage {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}

	return &LocalStorage{dir: dir}
}

func (ls *LocalStorage) Put(_ context.Context, filename string, source io.Reader) (*storage.Item, error) {
	if err := os.MkdirAll(ls.dir, 0o755); err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not create directory %s: %v", ls.dir, err)
	}

	path := filepath.Join(ls.dir, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not open %s: %v", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, source); err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not write %s: %v", path, err)
	}

	return &storage.Item{Path: path}, nil
}
