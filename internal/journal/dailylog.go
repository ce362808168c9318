package journal

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/currency"
	"vj-go/internal/model"
)

// Export formats accepted by DailyLog.Export.
const (
	FormatText = "text"
	FormatCSV  = "csv"
)

// DailyLog joins photos, expenses and notes into per-day timelines and owns
// the cached summary for each trip-day.
//
// An entry is created on first Get for a (trip, date). While its summary is a
// model.AutoSummary it is regenerated on every Get and ListForTrip; Update
// pins it to caller text which only Update or Unpin can replace.
type DailyLog struct {
	mu      sync.Mutex
	entries []model.DailyLogEntry
	nextID  int

	photos   PhotoSource
	expenses ExpenseSource
	notes    NoteSource
}

// NewDailyLog creates an engine over the given sources.
func NewDailyLog(photos PhotoSource, expenses ExpenseSource, notes NoteSource) *DailyLog {
	return &DailyLog{
		nextID:   1,
		photos:   photos,
		expenses: expenses,
		notes:    notes,
	}
}

// DatesWithActivity returns every distinct day on which the trip has a photo,
// expense or note, ascending.
func (d *DailyLog) DatesWithActivity(tripID int) []time.Time {
	seen := make(map[string]time.Time)
	add := func(t time.Time) {
		day := model.Day(t)
		seen[day.Format(model.DateLayout)] = day
	}

	for _, p := range d.photos.ForTrip(tripID) {
		add(p.CaptureDate)
	}
	for _, e := range d.expenses.ForTrip(tripID) {
		add(e.Date)
	}
	for _, n := range d.notes.ForTrip(tripID) {
		add(n.CreatedDate)
	}

	dates := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// HasActivity reports whether the trip has anything on date.
func (d *DailyLog) HasActivity(tripID int, date time.Time) bool {
	return len(d.Timeline(tripID, date)) > 0
}

// PreviousActivityDate returns the latest active day strictly before from.
func (d *DailyLog) PreviousActivityDate(tripID int, from time.Time) (time.Time, bool) {
	from = model.Day(from)
	dates := d.DatesWithActivity(tripID)
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i].Before(from) && !model.SameDay(dates[i], from) {
			return dates[i], true
		}
	}
	return time.Time{}, false
}

// NextActivityDate returns the earliest active day strictly after from.
func (d *DailyLog) NextActivityDate(tripID int, from time.Time) (time.Time, bool) {
	from = model.Day(from)
	for _, day := range d.DatesWithActivity(tripID) {
		if day.After(from) && !model.SameDay(day, from) {
			return day, true
		}
	}
	return time.Time{}, false
}

// Timeline returns the trip's activity on date ordered by timestamp. Items
// with equal timestamps keep photo, expense, note order and, within a kind,
// stored order.
func (d *DailyLog) Timeline(tripID int, date time.Time) []model.ActivityItem {
	var items []model.ActivityItem

	for _, p := range d.photos.ForTrip(tripID) {
		if model.SameDay(p.CaptureDate, date) {
			items = append(items, model.ActivityItem{
				Timestamp:   p.CaptureDate,
				Kind:        model.KindPhoto,
				SourceID:    p.ID,
				Description: photoDescription(p),
			})
		}
	}
	for _, e := range d.expenses.ForTrip(tripID) {
		if model.SameDay(e.Date, date) {
			items = append(items, model.ActivityItem{
				Timestamp:   e.Date,
				Kind:        model.KindExpense,
				SourceID:    e.ID,
				Description: expenseDescription(e),
			})
		}
	}
	for _, n := range d.notes.ForTrip(tripID) {
		if model.SameDay(n.CreatedDate, date) {
			items = append(items, model.ActivityItem{
				Timestamp:   n.CreatedDate,
				Kind:        model.KindNote,
				SourceID:    n.ID,
				Description: n.Title,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items
}

// Get returns the entry for (tripID, date), creating it if needed. An
// auto-generated entry is regenerated before it is returned.
func (d *DailyLog) Get(tripID int, date time.Time) model.DailyLogEntry {
	date = model.Day(date)
	summary := d.generate(tripID, date)

	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.find(tripID, date); i >= 0 {
		if d.entries[i].IsAutoGenerated() {
			d.entries[i].Summary = model.AutoSummary(summary)
		}
		return d.entries[i]
	}

	entry := model.DailyLogEntry{
		ID:      d.nextID,
		TripID:  tripID,
		Date:    date,
		Summary: model.AutoSummary(summary),
	}
	d.nextID++
	d.entries = append(d.entries, entry)
	return entry
}

// Lookup returns the entry with the given ID without regenerating it.
func (d *DailyLog) Lookup(logID int) (model.DailyLogEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexOf(logID); i >= 0 {
		return d.entries[i], true
	}
	return model.DailyLogEntry{}, false
}

// Update pins the entry to text.
func (d *DailyLog) Update(logID int, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(logID)
	if i < 0 {
		return false
	}
	d.entries[i].Summary = model.PinnedSummary(text)
	return true
}

// Refresh regenerates an auto-generated entry. It returns false for an
// unknown or pinned entry and leaves it untouched.
func (d *DailyLog) Refresh(logID int) bool {
	entry, ok := d.Lookup(logID)
	if !ok || !entry.IsAutoGenerated() {
		return false
	}
	summary := d.generate(entry.TripID, entry.Date)

	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(logID)
	if i < 0 || !d.entries[i].IsAutoGenerated() {
		return false
	}
	d.entries[i].Summary = model.AutoSummary(summary)
	return true
}

// Unpin returns a pinned entry to auto-generation and regenerates it.
// It returns false for an unknown entry.
func (d *DailyLog) Unpin(logID int) bool {
	entry, ok := d.Lookup(logID)
	if !ok {
		return false
	}
	summary := d.generate(entry.TripID, entry.Date)

	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(logID)
	if i < 0 {
		return false
	}
	d.entries[i].Summary = model.AutoSummary(summary)
	return true
}

// ListForTrip returns the trip's entries in creation order. Auto-generated
// entries are regenerated first, so listing is not a pure read.
func (d *DailyLog) ListForTrip(tripID int) []model.DailyLogEntry {
	d.refreshAuto(tripID)

	d.mu.Lock()
	defer d.mu.Unlock()

	var out []model.DailyLogEntry
	for _, e := range d.entries {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out
}

// refreshAuto regenerates every auto-generated entry of the trip.
func (d *DailyLog) refreshAuto(tripID int) {
	d.mu.Lock()
	var auto []model.DailyLogEntry
	for _, e := range d.entries {
		if e.TripID == tripID && e.IsAutoGenerated() {
			auto = append(auto, e)
		}
	}
	d.mu.Unlock()

	summaries := make(map[int]string, len(auto))
	for _, e := range auto {
		summaries[e.ID] = d.generate(tripID, e.Date)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.entries {
		s, ok := summaries[d.entries[i].ID]
		if ok && d.entries[i].IsAutoGenerated() {
			d.entries[i].Summary = model.AutoSummary(s)
		}
	}
}

// Export renders the day as its summary text or as CSV. The format is
// matched case-insensitively; anything other than "csv" yields text. The
// entry is created if it did not exist.
func (d *DailyLog) Export(tripID int, date time.Time, format string) string {
	entry := d.Get(tripID, date)
	if strings.EqualFold(format, FormatCSV) {
		return renderCSV(d.Timeline(tripID, date))
	}
	return entry.Text()
}

// DeleteByTrip removes all entries of a trip and returns how many were removed.
func (d *DailyLog) DeleteByTrip(tripID int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.entries[:0]
	for _, e := range d.entries {
		if e.TripID != tripID {
			kept = append(kept, e)
		}
	}
	removed := len(d.entries) - len(kept)
	d.entries = kept
	return removed
}

// All returns every entry as stored, for persistence.
func (d *DailyLog) All() []model.DailyLogEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.DailyLogEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Replace swaps in loaded entries and recovers the ID counter. A later entry
// for an already seen (trip, date) is dropped.
func (d *DailyLog) Replace(entries []model.DailyLogEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	d.entries = make([]model.DailyLogEntry, 0, len(entries))
	for _, e := range entries {
		e.Date = model.Day(e.Date)
		if e.Summary == nil {
			e.Summary = model.AutoSummary("")
		}
		key := dayKey(e.TripID, e.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		d.entries = append(d.entries, e)
	}
	d.nextID = nextIDAfter(d.entries, func(e model.DailyLogEntry) int { return e.ID })
}

// generate derives the summary for a trip-day. Expenses are totalled in the
// base currency.
func (d *DailyLog) generate(tripID int, date time.Time) string {
	total := decimal.Zero
	for _, e := range d.expenses.ForTrip(tripID) {
		if model.SameDay(e.Date, date) {
			total = total.Add(d.expenses.Convert(e.Amount, e.Currency, currency.Base))
		}
	}
	return renderSummary(date, d.Timeline(tripID, date), total)
}

func (d *DailyLog) find(tripID int, date time.Time) int {
	for i := range d.entries {
		if d.entries[i].TripID == tripID && model.SameDay(d.entries[i].Date, date) {
			return i
		}
	}
	return -1
}

func (d *DailyLog) indexOf(id int) int {
	for i := range d.entries {
		if d.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func dayKey(tripID int, date time.Time) string {
	return strconv.Itoa(tripID) + "/" + date.Format(model.DateLayout)
}

func photoDescription(p model.Photo) string {
	if p.Notes != "" {
		return p.Notes
	}
	if p.Location != "" {
		return "Photo at " + p.Location
	}
	return "Photo"
}

func expenseDescription(e model.Expense) string {
	return model.FormatAmount(e.Amount) + " " + e.Currency + " - " + e.Category + " - " + e.Description
}
