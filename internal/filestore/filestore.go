// Package filestore abstracts attachment storage. The local implementation
// writes under a configured directory; the ticket record keeps only the
// reference URL.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (url string, err error)
}

type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the file under a uuid-prefixed name so uploads never collide
// and the original name cannot traverse outside the upload directory.
func (l *Local) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return l.baseURL + "/" + name, nil
}

// Dir exposes the storage directory for static serving.
func (l *Local) Dir() string {
	return l.dir
}
