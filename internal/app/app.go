package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"vj-go/internal/archive"
	"vj-go/internal/config"
	"vj-go/internal/encryption"
	"vj-go/internal/fs"
	"vj-go/internal/journal"
	"vj-go/internal/model"
	"vj-go/internal/storage"
)

// JournalApp is the application layer between the CLI and JournalService.
// It constructs all dependencies from config, loads the journal on open,
// exposes one method per CLI operation, and writes the journal back on Close
// when the session changed it and auto_save is on.
type JournalApp struct {
	cfg       *config.Config
	storage   journal.Storage
	archive   journal.Archive
	encryptor journal.Encryptor
	service   *journal.JournalService
	logger    journal.Logger
	session   *Session
	logFile   io.Closer
}

// NewJournalApp creates a fully wired JournalApp from the given config.
// operation identifies the CLI command being run (e.g. "AddPhoto", "ShowLog").
// The caller must call Close when done.
func NewJournalApp(cfg *config.Config, operation string) (*JournalApp, error) {
	session := NewSession(operation, time.Now())
	logger, logFile, err := newLogger(LogFile(cfg), session.ID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a, err := newJournalApp(cfg, session, &slogAdapter{l: logger}, journal.RealClock{})
	if err != nil {
		logFile.Close()
		return nil, err
	}
	a.logFile = logFile
	return a, nil
}

func newJournalApp(cfg *config.Config, session *Session, logger journal.Logger, clock journal.Clock) (*JournalApp, error) {
	if cfg.JournalID == "" {
		return nil, fmt.Errorf("journal_id missing from config: run `vj config init`")
	}

	arc, err := archive.NewArchiveFromConfig(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	st, err := storage.NewStorageFromConfig(cfg.Storage, cfg.JournalID)
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}

	svc := journal.NewJournalService(st, fs.NewPhotoInspector(logger), logger, clock)
	if err := svc.Load(); err != nil {
		st.Close()
		return nil, err
	}
	logger.Debug("session started", "operation", session.Operation, "journal", cfg.JournalID)

	return &JournalApp{
		cfg:       cfg,
		storage:   st,
		archive:   arc,
		encryptor: enc,
		service:   svc,
		logger:    logger,
		session:   session,
	}, nil
}

// Settings returns the user preferences the app was opened with.
func (a *JournalApp) Settings() config.Settings {
	return a.cfg.Settings
}

// Save writes the journal to storage now, regardless of auto_save.
func (a *JournalApp) Save() error {
	if err := a.service.Save(); err != nil {
		return err
	}
	a.session.MarkSaved()
	return nil
}

// Close saves pending changes when auto_save is on and releases storage and
// the log file.
func (a *JournalApp) Close() error {
	var firstErr error

	if a.session.Dirty() {
		if a.cfg.Settings.AutoSave {
			if err := a.Save(); err != nil {
				firstErr = err
			}
		} else {
			a.logger.Warn("unsaved changes discarded, auto_save is off", "operation", a.session.Operation)
		}
	}

	if err := a.storage.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing storage: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

func (a *JournalApp) changed() { a.session.MarkDirty() }

// --- trips ---

// CreateTrip adds a trip. When it is the journal's first trip it also
// becomes the active one.
func (a *JournalApp) CreateTrip(name, destination string, start, end time.Time) (model.Trip, error) {
	if strings.TrimSpace(name) == "" {
		return model.Trip{}, fmt.Errorf("trip name is required")
	}
	if end.Before(start) {
		return model.Trip{}, fmt.Errorf("trip ends before it starts")
	}

	first := len(a.service.Trips().List()) == 0
	trip := a.service.Trips().Create(name, destination, start, end)
	if first {
		a.service.Trips().SetActive(trip.ID)
		trip.IsActive = true
	}
	a.changed()
	a.logger.Info("trip created", "trip", trip.ID, "name", trip.Name)
	return trip, nil
}

// ListTrips returns all trips in creation order.
func (a *JournalApp) ListTrips() []model.Trip {
	return a.service.Trips().List()
}

// GetTrip returns the trip with the given ID, or the active trip when id is 0.
func (a *JournalApp) GetTrip(id int) (model.Trip, error) {
	return a.service.ResolveTrip(id)
}

// UpdateTrip replaces a trip's details.
func (a *JournalApp) UpdateTrip(id int, name, destination string, start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("trip ends before it starts")
	}
	if !a.service.Trips().Update(id, name, destination, start, end) {
		return fmt.Errorf("trip %d: %w", id, journal.ErrTripNotFound)
	}
	a.changed()
	return nil
}

// DeleteTrip removes a trip and everything recorded for it.
func (a *JournalApp) DeleteTrip(id int) error {
	if err := a.service.DeleteTrip(id); err != nil {
		return err
	}
	a.changed()
	return nil
}

// UseTrip makes the trip active so later commands default to it.
func (a *JournalApp) UseTrip(id int) error {
	if !a.service.Trips().SetActive(id) {
		return fmt.Errorf("trip %d: %w", id, journal.ErrTripNotFound)
	}
	a.changed()
	return nil
}
