// Package storage keeps uploaded article files on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrOutsideRoot is returned for paths that escape the store's root.
var ErrOutsideRoot = errors.New("path escapes file store root")

// LocalStore writes files below a root directory. Stored paths are
// relative to the root.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// JournalDir is where a journal's files live.
func JournalDir(journalID uint) string {
	return filepath.Join("journals", fmt.Sprint(journalID))
}

// ArticleDir is where an article's files live.
func ArticleDir(articleID uint) string {
	return filepath.Join("articles", fmt.Sprint(articleID))
}

// EnsureDir creates dir (relative to the root) if needed.
func (s *LocalStore) EnsureDir(dir string) error {
	full, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// Save writes data under dir using a fresh uuid name that keeps the
// original extension. It returns the stored name and relative path.
func (s *LocalStore) Save(dir, originalName string, data []byte) (name, rel string, err error) {
	if err := s.EnsureDir(dir); err != nil {
		return "", "", err
	}

	name = uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	rel = filepath.Join(dir, name)
	full, err := s.resolve(rel)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return name, rel, nil
}

// Open returns a reader for a stored file.
func (s *LocalStore) Open(rel string) (io.ReadSeekCloser, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", rel, err)
	}
	return f, nil
}

func (s *LocalStore) resolve(rel string) (string, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.Clean("/"+rel))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return full, nil
}
