// Package file stores save slots as JSON files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/abysscore/store"
)

const ext = ".json"

// Store keeps one file per slot under Dir.
type Store struct {
	Dir string
}

var _ store.Store = (*Store)(nil)

// Open creates dir if needed and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Store{Dir: filepath.Clean(dir)}, nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.Dir, slot+ext)
}

// Load reads a slot's snapshot.
func (s *Store) Load(_ context.Context, slot string) ([]byte, error) {
	slot, err := store.CheckSlot(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %q: %w", slot, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", slot, err)
	}
	return data, nil
}

// Save writes a slot's snapshot. The previous file is replaced only once
// the new one is fully written.
func (s *Store) Save(_ context.Context, slot string, data []byte) error {
	slot, err := store.CheckSlot(slot)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %q: %w", slot, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("save %q: %w", slot, err)
	}
	return nil
}

// List returns every saved slot, sorted.
func (s *Store) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	var slots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			slots = append(slots, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(slots)
	return slots, nil
}
