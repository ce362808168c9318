package testutil

import (
	"testing"
	"time"

	"vj-go/internal/journal"
	"vj-go/internal/storage"
)

// NewTestJournal creates a JournalService over in-memory storage with a
// FixedClock and the given extractor (may be nil).
func NewTestJournal(t *testing.T, extractor journal.MetadataExtractor) (*journal.JournalService, *StubClock) {
	t.Helper()
	clock := FixedClock()
	store := storage.NewMemoryStorage()
	t.Cleanup(func() { store.Close() })
	return journal.NewJournalService(store, extractor, journal.NewNopLogger(), clock), clock
}

// At returns 2024-06-02 at hh:mm in UTC, the day most journal tests use.
func At(hh, mm int) time.Time {
	return time.Date(2024, 6, 2, hh, mm, 0, 0, time.UTC)
}
