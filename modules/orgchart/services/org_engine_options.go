package services

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxHistory bounds the number of retained snapshots.
const DefaultMaxHistory = 1000

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithMaxHistory sets how many snapshots are retained. When exceeded, the
// oldest snapshots are dropped and the cursor shifts with them.
func WithMaxHistory(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxHistory = n
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithEntryIDGenerator replaces the UUIDv7 generator used for history entries.
func WithEntryIDGenerator(newID func() (string, error)) EngineOption {
	return func(e *Engine) {
		if newID != nil {
			e.newEntryID = newID
		}
	}
}

func newUUIDv7String() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
