// Package tui provides a Bubble Tea terminal UI for the abyss. The model
// owns the engine directly and drives the passive and fast ticks itself.
package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	limit   int
	cursor  int // -1 while editing fresh input
}

// NewHistory creates a history that keeps at most limit entries.
func NewHistory(limit int) *History {
	return &History{limit: limit, cursor: -1}
}

// Push records a command. Repeating the last entry is a no-op, and the
// oldest entry falls off once the limit is reached.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]string(nil), h.entries[over:]...)
	}
}

// Len reports how many entries are kept.
func (h *History) Len() int { return len(h.entries) }

// Prev steps back toward the oldest entry and stops there.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor < 0:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. Moving past the newest entry returns false and
// leaves navigation.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	if h.cursor++; h.cursor == len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation.
func (h *History) ResetCursor() { h.cursor = -1 }
