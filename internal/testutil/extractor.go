package testutil

import (
	"fmt"
	"sync"
	"time"

	"vj-go/internal/journal"
)

// StubExtractor serves canned photo metadata keyed by raw path.
// Paths without an entry fail as not found.
type StubExtractor struct {
	mu    sync.Mutex
	known map[string]journal.PhotoMetadata
}

var _ journal.MetadataExtractor = (*StubExtractor)(nil)

func NewStubExtractor() *StubExtractor {
	return &StubExtractor{known: make(map[string]journal.PhotoMetadata)}
}

// AddPhoto registers rawPath as resolving to path, captured at taken.
func (s *StubExtractor) AddPhoto(rawPath, path string, taken time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known[rawPath] = journal.PhotoMetadata{Path: path, CaptureDate: taken}
}

func (s *StubExtractor) Extract(rawPath string) (journal.PhotoMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta, ok := s.known[rawPath]
	if !ok {
		return journal.PhotoMetadata{}, fmt.Errorf("photo not found: %s", rawPath)
	}
	return meta, nil
}
