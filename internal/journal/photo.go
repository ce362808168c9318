package journal

import (
	"sync"
	"time"

	"vj-go/internal/model"
)

// PhotoStore is the in-memory collection of photos.
// This implementation is safe for concurrent use.
type PhotoStore struct {
	mu        sync.RWMutex
	photos    []model.Photo
	nextID    int
	clock     Clock
	extractor MetadataExtractor
}

var _ PhotoSource = (*PhotoStore)(nil)

// NewPhotoStore creates an empty store. extractor may be nil, in which case
// every photo is dated with the clock's current time.
func NewPhotoStore(clock Clock, extractor MetadataExtractor) *PhotoStore {
	return &PhotoStore{nextID: 1, clock: clock, extractor: extractor}
}

// Add records a photo file for a trip. The capture date is "now" unless the
// extractor can read one from the file; the extractor may also repair the path.
// The trip ID is not validated.
func (s *PhotoStore) Add(tripID int, filePath string) model.Photo {
	photo := model.Photo{
		TripID:      tripID,
		FilePath:    filePath,
		CaptureDate: s.clock.Now(),
		Tags:        []string{},
		Notes:       "",
	}

	if s.extractor != nil {
		if meta, err := s.extractor.Extract(filePath); err == nil {
			photo.FilePath = meta.Path
			photo.CaptureDate = meta.CaptureDate
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	photo.ID = s.nextID
	s.nextID++
	s.photos = append(s.photos, photo)
	return clonePhoto(photo)
}

// Get returns the photo with the given ID.
func (s *PhotoStore) Get(id int) (model.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return clonePhoto(s.photos[i]), true
	}
	return model.Photo{}, false
}

// ForTrip returns the trip's photos in stored order.
func (s *PhotoStore) ForTrip(tripID int) []model.Photo {
	return s.filter(func(p model.Photo) bool { return p.TripID == tripID })
}

// AddTag appends tag unless the photo already carries it.
func (s *PhotoStore) AddTag(id int, tag string) bool {
	return s.mutate(id, func(p *model.Photo) {
		if tag != "" && !p.HasTag(tag) {
			p.Tags = append(p.Tags, tag)
		}
	})
}

// RemoveTag drops tag from the photo if present.
func (s *PhotoStore) RemoveTag(id int, tag string) bool {
	return s.mutate(id, func(p *model.Photo) {
		kept := p.Tags[:0]
		for _, t := range p.Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		p.Tags = kept
	})
}

// UpdateNotes replaces the photo's notes.
func (s *PhotoStore) UpdateNotes(id int, notes string) bool {
	return s.mutate(id, func(p *model.Photo) { p.Notes = notes })
}

// UpdateLocation replaces the photo's location. Empty clears it.
func (s *PhotoStore) UpdateLocation(id int, location string) bool {
	return s.mutate(id, func(p *model.Photo) { p.Location = location })
}

// UpdateCaptureDate overrides the capture date, e.g. for scans without EXIF data.
func (s *PhotoStore) UpdateCaptureDate(id int, captured time.Time) bool {
	return s.mutate(id, func(p *model.Photo) { p.CaptureDate = captured })
}

// SearchByTag returns the trip's photos carrying tag (exact match).
func (s *PhotoStore) SearchByTag(tripID int, tag string) []model.Photo {
	return s.filter(func(p model.Photo) bool {
		return p.TripID == tripID && p.HasTag(tag)
	})
}

// SearchByLocation returns the trip's photos whose location contains text,
// ignoring case. Photos without a location never match.
func (s *PhotoStore) SearchByLocation(tripID int, text string) []model.Photo {
	return s.filter(func(p model.Photo) bool {
		return p.TripID == tripID && p.Location != "" && containsFold(p.Location, text)
	})
}

// SearchByDateRange returns the trip's photos captured within [start, end].
func (s *PhotoStore) SearchByDateRange(tripID int, start, end time.Time) []model.Photo {
	return s.filter(func(p model.Photo) bool {
		return p.TripID == tripID && !p.CaptureDate.Before(start) && !p.CaptureDate.After(end)
	})
}

// SearchByNotes returns the trip's photos whose notes contain text, ignoring case.
func (s *PhotoStore) SearchByNotes(tripID int, text string) []model.Photo {
	return s.filter(func(p model.Photo) bool {
		return p.TripID == tripID && p.Notes != "" && containsFold(p.Notes, text)
	})
}

// Delete removes a photo.
func (s *PhotoStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.photos = append(s.photos[:i], s.photos[i+1:]...)
	return true
}

// DeleteByTrip removes every photo of a trip and returns how many were removed.
func (s *PhotoStore) DeleteByTrip(tripID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.photos[:0]
	for _, p := range s.photos {
		if p.TripID != tripID {
			kept = append(kept, p)
		}
	}
	removed := len(s.photos) - len(kept)
	s.photos = kept
	return removed
}

// All returns every photo, for persistence.
func (s *PhotoStore) All() []model.Photo {
	return s.filter(func(model.Photo) bool { return true })
}

// Replace swaps in a loaded collection and recovers the ID counter.
func (s *PhotoStore) Replace(photos []model.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.photos = make([]model.Photo, 0, len(photos))
	for _, p := range photos {
		p.Tags = uniqueTags(p.Tags)
		s.photos = append(s.photos, p)
	}
	s.nextID = nextIDAfter(s.photos, func(p model.Photo) int { return p.ID })
}

func (s *PhotoStore) mutate(id int, fn func(p *model.Photo)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.photos[i])
	return true
}

func (s *PhotoStore) filter(keep func(model.Photo) bool) []model.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Photo
	for _, p := range s.photos {
		if keep(p) {
			out = append(out, clonePhoto(p))
		}
	}
	return out
}

func (s *PhotoStore) indexOf(id int) int {
	for i := range s.photos {
		if s.photos[i].ID == id {
			return i
		}
	}
	return -1
}

func clonePhoto(p model.Photo) model.Photo {
	p.Tags = cloneTags(p.Tags)
	return p
}
