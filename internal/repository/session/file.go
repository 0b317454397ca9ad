package session

import (
	"context"
	"encoding/base32"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"atelier-storefront/internal/domain"
)

type fileRepo struct {
	dir string
}

// NewFile returns a Repository writing one file per key under dir. This is
// the closest server-side analog of browser local storage.
func NewFile(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileRepo{dir: dir}, nil
}

func (r *fileRepo) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *fileRepo) Set(_ context.Context, key string, value []byte) error {
	path := r.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (r *fileRepo) Delete(_ context.Context, key string) error {
	err := os.Remove(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// path encodes the key so separators like "cart:abc" stay a single filename.
func (r *fileRepo) path(key string) string {
	name := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(key))
	return filepath.Join(r.dir, name+".json")
}
