package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// localDisk stores files below root and serves them from baseURL.
type localDisk struct {
	root    string
	baseURL string
	now     func() time.Time
}

func NewLocalDisk(root, baseURL string) Disk {
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Root is the directory served under the disk's base URL.
func (d *localDisk) Root() string { return d.root }

func (d *localDisk) fullPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("storage/local: empty key")
	}
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (d *localDisk) Save(ctx context.Context, namespace, originalName string, r io.Reader) (string, error) {
	key, err := uniqueKey(ctx, d, d.now(), namespace, originalName)
	if err != nil {
		return "", err
	}

	full, err := d.fullPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("storage/local: close %s: %w", key, err)
	}

	return key, nil
}

func (d *localDisk) Delete(ctx context.Context, key string) error {
	full, err := d.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) Exists(ctx context.Context, key string) (bool, error) {
	full, err := d.fullPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage/local: stat %s: %w", key, err)
	}
	return true, nil
}

func (d *localDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(key, "/")
}
