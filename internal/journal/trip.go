package journal

import (
	"sync"
	"time"

	"vj-go/internal/model"
)

// TripStore is the in-memory collection of trips.
// This implementation is safe for concurrent use.
type TripStore struct {
	mu     sync.RWMutex
	trips  []model.Trip
	nextID int
}

// NewTripStore creates an empty store. IDs start at 1.
func NewTripStore() *TripStore {
	return &TripStore{nextID: 1}
}

// Create adds a new, inactive trip.
func (s *TripStore) Create(name, destination string, start, end time.Time) model.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip := model.Trip{
		ID:          s.nextID,
		Name:        name,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
	}
	s.nextID++
	s.trips = append(s.trips, trip)
	return trip
}

// Get returns the trip with the given ID.
func (s *TripStore) Get(id int) (model.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.trips[i], true
	}
	return model.Trip{}, false
}

// List returns all trips in creation order.
func (s *TripStore) List() []model.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

// Update overwrites a trip's descriptive fields. The active flag is untouched.
func (s *TripStore) Update(id int, name, destination string, start, end time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	t := &s.trips[i]
	t.Name = name
	t.Destination = destination
	t.StartDate = start
	t.EndDate = end
	return true
}

// SetActive makes id the only active trip.
// An unknown id leaves the current active trip in place and returns false.
func (s *TripStore) SetActive(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false
	}
	for i := range s.trips {
		s.trips[i].IsActive = s.trips[i].ID == id
	}
	return true
}

// Active returns the active trip, if any.
func (s *TripStore) Active() (model.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trips {
		if t.IsActive {
			return t, true
		}
	}
	return model.Trip{}, false
}

// Delete removes a single trip record. Dependent records are removed by
// JournalService.DeleteTrip, not here.
func (s *TripStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.trips = append(s.trips[:i], s.trips[i+1:]...)
	return true
}

// Replace swaps in a loaded collection and recovers the ID counter.
// Only the first trip flagged active keeps the flag.
func (s *TripStore) Replace(trips []model.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips = make([]model.Trip, len(trips))
	copy(s.trips, trips)

	seenActive := false
	for i := range s.trips {
		if s.trips[i].IsActive {
			if seenActive {
				s.trips[i].IsActive = false
			}
			seenActive = true
		}
	}
	s.nextID = nextIDAfter(s.trips, func(t model.Trip) int { return t.ID })
}

func (s *TripStore) indexOf(id int) int {
	for i := range s.trips {
		if s.trips[i].ID == id {
			return i
		}
	}
	return -1
}
