package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by stores.
var (
	// ErrNotFound indicates the requested path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrIsDirectory indicates the path names a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Store is the persistence collaborator. The editor holds only the
// in-memory document between Load and Save; what a commit identifier means
// (a git SHA, a revision counter, nothing) is the store's business.
type Store interface {
	// Load returns the text content at path.
	Load(path string) (string, error)
	// Save writes text to path with a human commit message and returns a
	// commit identifier.
	Save(path, text, message string) (string, error)
	// Delete removes the file at path.
	Delete(path string) error
	// Rename moves the file at oldPath to newPath.
	Rename(oldPath, newPath string) error
	// List returns the store's Markdown files, relative to its root.
	List() ([]string, error)
}

// Local is a Store over a directory on the local filesystem. Its commit
// identifier is a content hash; the message is accepted and dropped.
type Local struct {
	root string
}

// NewLocal creates a store rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Load implements Store.
func (l *Local) Load(path string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Save implements Store, creating parent directories as needed.
func (l *Local) Save(path, text, _ string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating directories for %s: %w", path, err)
	}
	if err := os.WriteFile(full, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// Delete implements Store.
func (l *Local) Delete(path string) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// Rename implements Store, creating parent directories for the new path.
func (l *Local) Rename(oldPath, newPath string) error {
	oldFull := filepath.Join(l.root, filepath.FromSlash(oldPath))
	if _, err := os.Stat(oldFull); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, oldPath)
		}
		return err
	}
	newFull := filepath.Join(l.root, filepath.FromSlash(newPath))
	if err := os.MkdirAll(filepath.Dir(newFull), 0o755); err != nil {
		return fmt.Errorf("creating directories for %s: %w", newPath, err)
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// List implements Store, returning Markdown files under the root.
func (l *Local) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.root, err)
	}
	return files, nil
}
