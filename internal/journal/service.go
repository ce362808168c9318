package journal

import (
	"fmt"

	"vj-go/internal/currency"
	"vj-go/internal/model"
)

// JournalService is the orchestration layer that owns every store and the
// daily log engine, and moves their state to and from Storage.
type JournalService struct {
	trips    *TripStore
	photos   *PhotoStore
	expenses *ExpenseStore
	notes    *NoteStore
	logs     *DailyLog

	storage Storage
	logger  Logger
	clock   Clock
}

// NewJournalService creates an empty journal. Call Load to populate it from
// storage. A nil extractor leaves photo paths and dates untouched on add.
func NewJournalService(storage Storage, extractor MetadataExtractor, logger Logger, clock Clock) *JournalService {
	photos := NewPhotoStore(clock, extractor)
	expenses := NewExpenseStore(currency.NewConverter())
	notes := NewNoteStore(clock)

	return &JournalService{
		trips:    NewTripStore(),
		photos:   photos,
		expenses: expenses,
		notes:    notes,
		logs:     NewDailyLog(photos, expenses, notes),
		storage:  storage,
		logger:   logger,
		clock:    clock,
	}
}

func (s *JournalService) Trips() *TripStore       { return s.trips }
func (s *JournalService) Photos() *PhotoStore     { return s.photos }
func (s *JournalService) Expenses() *ExpenseStore { return s.expenses }
func (s *JournalService) Notes() *NoteStore       { return s.notes }
func (s *JournalService) Logs() *DailyLog         { return s.logs }

// Load replaces the in-memory journal with the stored snapshot.
// An empty storage leaves the journal empty.
func (s *JournalService) Load() error {
	snap, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("loading journal: %w", err)
	}
	if snap == nil {
		s.logger.Debug("no saved journal, starting empty")
		return nil
	}
	s.Restore(snap)
	s.logger.Debug("journal loaded",
		"trips", len(snap.Trips),
		"photos", len(snap.Photos),
		"expenses", len(snap.Expenses),
		"notes", len(snap.Notes),
		"logs", len(snap.DailyLogs))
	return nil
}

// Save writes the current journal to storage.
func (s *JournalService) Save() error {
	if err := s.storage.Save(s.Snapshot()); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	s.logger.Info("journal saved")
	return nil
}

// Snapshot captures the whole journal.
func (s *JournalService) Snapshot() *model.Snapshot {
	return &model.Snapshot{
		Trips:         s.trips.List(),
		Photos:        s.photos.All(),
		Expenses:      s.expenses.All(),
		Notes:         s.notes.All(),
		DailyLogs:     s.logs.All(),
		ExchangeRates: s.expenses.Rates(),
	}
}

// Restore replaces every store with the snapshot contents and recovers each
// ID counter.
func (s *JournalService) Restore(snap *model.Snapshot) {
	s.trips.Replace(snap.Trips)
	s.photos.Replace(snap.Photos)
	s.expenses.Replace(snap.Expenses, snap.ExchangeRates)
	s.notes.Replace(snap.Notes)
	s.logs.Replace(snap.DailyLogs)
}

// ResolveTrip returns the trip with the given ID, or the active trip when
// id is 0.
func (s *JournalService) ResolveTrip(id int) (model.Trip, error) {
	if id == 0 {
		trip, ok := s.trips.Active()
		if !ok {
			return model.Trip{}, ErrNoActiveTrip
		}
		return trip, nil
	}
	trip, ok := s.trips.Get(id)
	if !ok {
		return model.Trip{}, fmt.Errorf("trip %d: %w", id, ErrTripNotFound)
	}
	return trip, nil
}

// DeleteTrip removes a trip together with its photos, expenses, notes and
// daily logs.
func (s *JournalService) DeleteTrip(id int) error {
	if !s.trips.Delete(id) {
		return fmt.Errorf("trip %d: %w", id, ErrTripNotFound)
	}
	photos := s.photos.DeleteByTrip(id)
	expenses := s.expenses.DeleteByTrip(id)
	notes := s.notes.DeleteByTrip(id)
	logs := s.logs.DeleteByTrip(id)

	s.logger.Info("trip deleted",
		"trip", id,
		"photos", photos,
		"expenses", expenses,
		"notes", notes,
		"logs", logs)
	return nil
}
