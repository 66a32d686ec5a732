// Package reject defines the domain error returned by action handlers.
// A rejected action leaves state unchanged apart from the error's log lines.
package reject

import "strings"

// Code classifies a rejection.
type Code string

const (
	// InsufficientGold means a purchase or fee exceeds current gold.
	InsufficientGold Code = "INSUFFICIENT_GOLD"
	// InsufficientHP means an hp cost cannot be paid.
	InsufficientHP Code = "INSUFFICIENT_HP"
	// InsufficientHunger means a hunger cost cannot be paid.
	InsufficientHunger Code = "INSUFFICIENT_HUNGER"
	// InsufficientResources groups several unpaid costs.
	InsufficientResources Code = "INSUFFICIENT_RESOURCES"
	// MissingItem means a required item is absent or under-count.
	MissingItem Code = "MISSING_ITEM"
	// Blocked means the action is not allowed in the current state.
	Blocked Code = "BLOCKED"
	// InvalidTarget means the action has nothing to act on. No log is written.
	InvalidTarget Code = "INVALID_TARGET"
)

// Error is a rejected action with the user-facing lines to log.
type Error struct {
	Code  Code
	Lines []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Lines) == 0 {
		return string(e.Code)
	}
	return strings.Join(e.Lines, "; ")
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a rejection with a single log line.
func New(code Code, line string) *Error {
	return &Error{Code: code, Lines: []string{line}}
}

// Many creates a rejection carrying one log line per failed check.
func Many(code Code, lines []string) *Error {
	return &Error{Code: code, Lines: lines}
}

// Invalid creates a silent invalid-target rejection.
func Invalid() *Error {
	return &Error{Code: InvalidTarget}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInsufficientGold      = &Error{Code: InsufficientGold}
	ErrInsufficientHP        = &Error{Code: InsufficientHP}
	ErrInsufficientHunger    = &Error{Code: InsufficientHunger}
	ErrInsufficientResources = &Error{Code: InsufficientResources}
	ErrMissingItem           = &Error{Code: MissingItem}
	ErrBlocked               = &Error{Code: Blocked}
	ErrInvalidTarget         = &Error{Code: InvalidTarget}
)
