package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for daily log dates.
const DateLayout = "2006-01-02"

// Summary is the narrative attached to a DailyLogEntry. It is either an
// AutoSummary, which the daily log engine regenerates from the day's activity
// on every read, or a PinnedSummary, which only an explicit edit replaces.
type Summary interface {
	Text() string
	isSummary()
}

// AutoSummary is generated text that may be overwritten at any time.
type AutoSummary string

func (s AutoSummary) Text() string { return string(s) }
func (AutoSummary) isSummary()     {}

// PinnedSummary is user-supplied text that regeneration never touches.
type PinnedSummary string

func (s PinnedSummary) Text() string { return string(s) }
func (PinnedSummary) isSummary()     {}

// DailyLogEntry is the cached narrative for one trip-day.
// (TripID, Date) is unique; Date is always midnight.
type DailyLogEntry struct {
	ID      int
	TripID  int
	Date    time.Time
	Summary Summary
}

// Text returns the current summary text.
func (e DailyLogEntry) Text() string {
	if e.Summary == nil {
		return ""
	}
	return e.Summary.Text()
}

// IsAutoGenerated reports whether the summary is still regenerated on read.
func (e DailyLogEntry) IsAutoGenerated() bool {
	_, ok := e.Summary.(AutoSummary)
	return ok
}

// dailyLogRecord is the persisted shape of a DailyLogEntry.
type dailyLogRecord struct {
	ID              int    `json:"id"`
	TripID          int    `json:"tripId"`
	Date            string `json:"date"`
	Summary         string `json:"summary"`
	IsAutoGenerated bool   `json:"isAutoGenerated"`
}

// MarshalJSON writes the entry as {id, tripId, date, summary, isAutoGenerated}.
func (e DailyLogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(dailyLogRecord{
		ID:              e.ID,
		TripID:          e.TripID,
		Date:            e.Date.Format(DateLayout),
		Summary:         e.Text(),
		IsAutoGenerated: e.IsAutoGenerated(),
	})
}

// UnmarshalJSON accepts a plain date or a full timestamp for "date".
func (e *DailyLogEntry) UnmarshalJSON(data []byte) error {
	var rec dailyLogRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	date, err := ParseDate(rec.Date)
	if err != nil {
		return fmt.Errorf("daily log %d: %w", rec.ID, err)
	}
	*e = NewDailyLogEntry(rec.ID, rec.TripID, date, rec.Summary, rec.IsAutoGenerated)
	return nil
}

// NewDailyLogEntry rebuilds an entry from its flat persisted fields.
func NewDailyLogEntry(id, tripID int, date time.Time, summary string, autoGenerated bool) DailyLogEntry {
	var s Summary = PinnedSummary(summary)
	if autoGenerated {
		s = AutoSummary(summary)
	}
	return DailyLogEntry{ID: id, TripID: tripID, Date: Day(date), Summary: s}
}

// ParseDate parses a calendar date in local time. Full timestamps are
// accepted and truncated to the day.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return Day(t), nil
}

// Day truncates t to midnight in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date, each read
// in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
