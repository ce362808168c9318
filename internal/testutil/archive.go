package testutil

import (
	"vj-go/internal/archive"
	"vj-go/internal/journal"
)

// NewTestArchive creates a new in-memory archive for testing.
func NewTestArchive() journal.Archive {
	return archive.NewMemoryArchive()
}
