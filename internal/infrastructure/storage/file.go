package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

const fileFormatVersion = "1"

// ErrQuotaExceeded is returned when a write would grow the file past MaxBytes.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// storeFile is the on-disk layout of a FileStore.
type storeFile struct {
	Version string            `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore persists entries in a JSON file. Every process pointing at the same
// path shares the entries; reads pick up writes from other processes by
// re-reading the file whenever its size or modification time changes.
type FileStore struct {
	path     string
	maxBytes int

	mu      sync.Mutex
	entries map[string]string
	info    os.FileInfo
	loaded  bool
}

// FileOption customises a FileStore.
type FileOption func(*FileStore)

// WithMaxBytes caps the encoded file size. Zero disables the cap.
func WithMaxBytes(n int) FileOption {
	return func(f *FileStore) {
		f.maxBytes = n
	}
}

// NewFileStore returns a store backed by path. The file and its directory are
// created lazily on the first write.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	f := &FileStore{path: path, entries: make(map[string]string)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.refresh(); err != nil {
		return "", false, err
	}
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(entries map[string]string) bool {
		entries[key] = value
		return true
	})
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.update(func(entries map[string]string) bool {
		if _, ok := entries[key]; !ok {
			return false
		}
		delete(entries, key)
		return true
	})
}

// update re-reads the file and rewrites it with mutate applied, holding the
// write lock throughout so keys written by other stores on the same path are
// never clobbered. mutate reports whether anything changed.
func (f *FileStore) update(mutate func(entries map[string]string) bool) error {
	pl := processLock(f.path)
	pl.Lock()
	defer pl.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	unlock, err := lockFile(f.path)
	if err != nil {
		return err
	}
	defer unlock()

	f.loaded = false
	if err := f.refresh(); err != nil {
		return err
	}
	next := cloneEntries(f.entries)
	if !mutate(next) {
		return nil
	}
	return f.write(next)
}

// refresh reloads the file when it changed since the last read. A missing file
// is an empty store.
func (f *FileStore) refresh() error {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.entries = make(map[string]string)
			f.info = nil
			f.loaded = true
			return nil
		}
		return fmt.Errorf("stat storage file: %w", err)
	}
	if f.loaded && unchanged(f.info, info) {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read storage file: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse storage file: %w", err)
	}

	f.entries = file.Entries
	if f.entries == nil {
		f.entries = make(map[string]string)
	}
	f.info = info
	f.loaded = true
	return nil
}

// unchanged reports whether cur is the file last read. Writes replace the file
// by rename, so a new inode always means new content.
func unchanged(prev, cur os.FileInfo) bool {
	if prev == nil {
		return false
	}
	return os.SameFile(prev, cur) && prev.ModTime().Equal(cur.ModTime()) && prev.Size() == cur.Size()
}

// write replaces the file atomically via a uniquely named temporary file and
// rename. Callers hold the write lock.
func (f *FileStore) write(entries map[string]string) error {
	data, err := json.MarshalIndent(storeFile{Version: fileFormatVersion, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage file: %w", err)
	}
	if f.maxBytes > 0 && len(data) > f.maxBytes {
		return ErrQuotaExceeded
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temporary file: %w", err)
	}

	f.entries = entries
	if info, err := os.Stat(f.path); err == nil {
		f.info = info
	} else {
		f.loaded = false
	}
	return nil
}

func cloneEntries(src map[string]string) map[string]string {
	clone := make(map[string]string, len(src))
	for k, v := range src {
		clone[k] = v
	}
	return clone
}

var _ ports.KeyValueStore = (*FileStore)(nil)
