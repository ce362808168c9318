package app

import "time"

// sessionIDLayout names a CLI session by its start time.
const sessionIDLayout = "20060102T150405Z"

// Session tracks one CLI invocation against the journal. Commands that
// change data mark the session dirty; a dirty session is written back to
// storage on Close when auto_save is on.
type Session struct {
	ID        string
	Operation string
	dirty     bool
}

// NewSession creates a clean session for the named operation.
func NewSession(operation string, started time.Time) *Session {
	return &Session{
		ID:        started.UTC().Format(sessionIDLayout),
		Operation: operation,
	}
}

// MarkDirty records that the journal changed.
func (s *Session) MarkDirty() { s.dirty = true }

// MarkSaved records that the journal was written to storage.
func (s *Session) MarkSaved() { s.dirty = false }

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }
