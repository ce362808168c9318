package journal

import (
	"sync"

	"vj-go/internal/model"
)

// NoteStore is the in-memory collection of notes.
// This implementation is safe for concurrent use.
type NoteStore struct {
	mu     sync.RWMutex
	notes  []model.Note
	nextID int
	clock  Clock
}

var _ NoteSource = (*NoteStore)(nil)

// NewNoteStore creates an empty store that stamps notes with clock.
func NewNoteStore(clock Clock) *NoteStore {
	return &NoteStore{nextID: 1, clock: clock}
}

// Add records a note created now.
func (s *NoteStore) Add(tripID int, title, content string, tags []string) model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := model.Note{
		ID:          s.nextID,
		TripID:      tripID,
		Title:       title,
		Content:     content,
		CreatedDate: s.clock.Now(),
		Tags:        uniqueTags(tags),
	}
	s.nextID++
	s.notes = append(s.notes, note)
	return cloneNote(note)
}

// Get returns the note with the given ID.
func (s *NoteStore) Get(id int) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return cloneNote(s.notes[i]), true
	}
	return model.Note{}, false
}

// ForTrip returns the trip's notes in stored order.
func (s *NoteStore) ForTrip(tripID int) []model.Note {
	return s.filter(func(n model.Note) bool { return n.TripID == tripID })
}

// Update replaces title, content and tags. The created date never changes.
func (s *NoteStore) Update(id int, title, content string, tags []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	n := &s.notes[i]
	n.Title = title
	n.Content = content
	n.Tags = uniqueTags(tags)
	return true
}

// Delete removes a note.
func (s *NoteStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return true
}

// DeleteByTrip removes every note of a trip and returns how many were removed.
func (s *NoteStore) DeleteByTrip(tripID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.TripID != tripID {
			kept = append(kept, n)
		}
	}
	removed := len(s.notes) - len(kept)
	s.notes = kept
	return removed
}

// Search returns the trip's notes whose title or content contains text,
// ignoring case.
func (s *NoteStore) Search(tripID int, text string) []model.Note {
	return s.filter(func(n model.Note) bool {
		return n.TripID == tripID && (containsFold(n.Title, text) || containsFold(n.Content, text))
	})
}

// SearchByTag returns the trip's notes carrying tag (exact match).
func (s *NoteStore) SearchByTag(tripID int, tag string) []model.Note {
	return s.filter(func(n model.Note) bool {
		return n.TripID == tripID && n.HasTag(tag)
	})
}

// All returns every note, for persistence.
func (s *NoteStore) All() []model.Note {
	return s.filter(func(model.Note) bool { return true })
}

// Replace swaps in a loaded collection and recovers the ID counter.
func (s *NoteStore) Replace(notes []model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make([]model.Note, 0, len(notes))
	for _, n := range notes {
		n.Tags = uniqueTags(n.Tags)
		s.notes = append(s.notes, n)
	}
	s.nextID = nextIDAfter(s.notes, func(n model.Note) int { return n.ID })
}

func (s *NoteStore) filter(keep func(model.Note) bool) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Note
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, cloneNote(n))
		}
	}
	return out
}

func (s *NoteStore) indexOf(id int) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneNote(n model.Note) model.Note {
	n.Tags = cloneTags(n.Tags)
	return n
}
