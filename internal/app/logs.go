package app

import (
	"fmt"
	"strings"
	"time"

	"vj-go/internal/journal"
	"vj-go/internal/model"
)

// ActivityDates lists the days of a trip that have any photo, expense or note.
func (a *JournalApp) ActivityDates(tripID int) ([]time.Time, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Logs().DatesWithActivity(trip.ID), nil
}

// ShowLog returns the daily log for a trip-day, creating it on first view.
func (a *JournalApp) ShowLog(tripID int, date time.Time) (model.DailyLogEntry, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return model.DailyLogEntry{}, err
	}
	entry := a.service.Logs().Get(trip.ID, date)
	a.changed()
	return entry, nil
}

// Timeline returns the ordered activity of a trip-day.
func (a *JournalApp) Timeline(tripID int, date time.Time) ([]model.ActivityItem, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Logs().Timeline(trip.ID, date), nil
}

// ListLogs returns a trip's saved daily logs in the order they were created.
func (a *JournalApp) ListLogs(tripID int) ([]model.DailyLogEntry, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Logs().ListForTrip(trip.ID), nil
}

// EditLog replaces a log's summary with text and pins it.
func (a *JournalApp) EditLog(logID int, text string) error {
	if !a.service.Logs().Update(logID, text) {
		return fmt.Errorf("daily log %d: %w", logID, journal.ErrNotFound)
	}
	a.changed()
	a.logger.Info("daily log pinned", "log", logID)
	return nil
}

// RefreshLog regenerates an auto-generated log's summary from current
// activity. Pinned logs must be unpinned first.
func (a *JournalApp) RefreshLog(logID int) (model.DailyLogEntry, error) {
	entry, ok := a.service.Logs().Lookup(logID)
	if !ok {
		return model.DailyLogEntry{}, fmt.Errorf("daily log %d: %w", logID, journal.ErrNotFound)
	}
	if !entry.IsAutoGenerated() {
		return model.DailyLogEntry{}, fmt.Errorf("daily log %d is pinned: unpin it to regenerate", logID)
	}
	if !a.service.Logs().Refresh(logID) {
		return model.DailyLogEntry{}, fmt.Errorf("daily log %d: %w", logID, journal.ErrNotFound)
	}
	a.changed()
	entry, _ = a.service.Logs().Lookup(logID)
	return entry, nil
}

// UnpinLog returns a pinned log to automatic generation.
func (a *JournalApp) UnpinLog(logID int) (model.DailyLogEntry, error) {
	if !a.service.Logs().Unpin(logID) {
		return model.DailyLogEntry{}, fmt.Errorf("daily log %d: %w", logID, journal.ErrNotFound)
	}
	a.changed()
	a.logger.Info("daily log unpinned", "log", logID)
	entry, _ := a.service.Logs().Lookup(logID)
	return entry, nil
}

// AdjacentActivityDate finds the closest day with activity before (forward
// false) or after (forward true) from. The bool is false at either end.
func (a *JournalApp) AdjacentActivityDate(tripID int, from time.Time, forward bool) (time.Time, bool, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return time.Time{}, false, err
	}
	var (
		date time.Time
		ok   bool
	)
	if forward {
		date, ok = a.service.Logs().NextActivityDate(trip.ID, from)
	} else {
		date, ok = a.service.Logs().PreviousActivityDate(trip.ID, from)
	}
	return date, ok, nil
}

// ExportLog renders a trip-day as plain text or CSV. Creating the log on
// export matches viewing it.
func (a *JournalApp) ExportLog(tripID int, date time.Time, format string) (string, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(format) {
	case journal.FormatText, journal.FormatCSV, "":
	default:
		return "", fmt.Errorf("unknown export format %q (want text or csv)", format)
	}
	out := a.service.Logs().Export(trip.ID, date, format)
	a.changed()
	return out, nil
}
