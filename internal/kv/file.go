package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// File stores each slot as <dir>/<key>.json.
//
// Writes go to a temporary file in the same directory and are renamed into
// place, so a reader never observes a half-written value.
type File struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// OpenFile opens (creating if needed) a slot directory.
func OpenFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("open file storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open file storage: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the slot directory.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file that backs key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Storage.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	if err := validateFileKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}

	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Storage with an atomic rename.
func (f *File) Set(_ context.Context, key, value string) error {
	if err := validateFileKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	tmpName := tmp.Name()
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("set %q: write: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("set %q: sync: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("set %q: close: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("set %q: rename: %w", key, err)
	}
	return nil
}

// Close marks the storage closed. Files are left in place.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Watch reports changes to key's file made by any process, including this
// one. Bursts of events are coalesced: the returned channel holds at most
// one pending notification. The channel is closed when ctx is done.
func (f *File) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	if err := validateFileKey(key); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", key, err)
	}
	// Watch the directory, not the file: atomic renames replace the inode.
	if err := w.Add(f.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", key, err)
	}

	target := filepath.Base(f.Path(key))
	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

func validateFileKey(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid file key %q", key)
	}
	return nil
}
