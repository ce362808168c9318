package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a vacation with a date range. It is the aggregation root for every
// other entity: photos, expenses, notes and daily logs all carry its ID.
type Trip struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"` // at most one trip is active at a time
}

// Photo is an image attached to a trip.
type Photo struct {
	ID          int       `json:"id"`
	TripID      int       `json:"tripId"` // not validated against the trip store
	FilePath    string    `json:"filePath"`
	CaptureDate time.Time `json:"captureDate"`
	Location    string    `json:"location,omitempty"` // empty when unknown
	Tags        []string  `json:"tags"`               // unique, insertion ordered
	Notes       string    `json:"notes"`
}

// HasTag reports whether the photo carries tag (exact match).
func (p Photo) HasTag(tag string) bool {
	return containsTag(p.Tags, tag)
}

// Expense is a single money outlay during a trip.
type Expense struct {
	ID          int             `json:"id"`
	TripID      int             `json:"tripId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"` // free-form code, not validated
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"` // case-sensitive, free-form
}

// MarshalJSON writes the amount with the scale it was entered with.
func (e Expense) MarshalJSON() ([]byte, error) {
	type plain Expense
	return json.Marshal(struct {
		plain
		Amount string `json:"amount"`
	}{plain: plain(e), Amount: FormatAmount(e.Amount)})
}

// FormatAmount renders d keeping its scale, so 12.50 stays "12.50" and 100
// stays "100".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Note is a free-text journal entry.
type Note struct {
	ID          int       `json:"id"`
	TripID      int       `json:"tripId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"createdDate"` // set once at creation
	Tags        []string  `json:"tags"`
}

// HasTag reports whether the note carries tag (exact match).
func (n Note) HasTag(tag string) bool {
	return containsTag(n.Tags, tag)
}

// ActivityKind identifies which collection an ActivityItem came from.
type ActivityKind string

const (
	KindPhoto   ActivityKind = "Photo"
	KindExpense ActivityKind = "Expense"
	KindNote    ActivityKind = "Note"
)

// ActivityItem is one event on a day's timeline. Items are derived on demand
// and never stored.
type ActivityItem struct {
	Timestamp   time.Time
	Kind        ActivityKind
	SourceID    int
	Description string
}

// Snapshot is the complete persisted state of a journal.
type Snapshot struct {
	Trips         []Trip                     `json:"trips"`
	Photos        []Photo                    `json:"photos"`
	Expenses      []Expense                  `json:"expenses"`
	Notes         []Note                     `json:"notes"`
	DailyLogs     []DailyLogEntry            `json:"dailyLogs"`
	ExchangeRates map[string]decimal.Decimal `json:"exchangeRates,omitempty"`
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
