// Package store defines the slot-keyed snapshot storage used to persist
// save data between sessions.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when a slot has never been saved.
var ErrNotFound = errors.New("save slot not found")

// Store persists encoded snapshots by slot name.
type Store interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
	List(ctx context.Context) ([]string, error)
}

// CheckSlot normalizes a slot name and rejects ones that are empty or
// could escape a directory.
func CheckSlot(slot string) (string, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return "", fmt.Errorf("slot is required")
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", fmt.Errorf("invalid slot %q", slot)
	}
	return slot, nil
}
