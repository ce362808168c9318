package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/fs"
	"vj-go/internal/journal"
	"vj-go/internal/model"
)

// --- photos ---

// AddPhoto records a photo file for a trip (0 means the active trip).
// A path that cannot be found is still recorded, dated now, with a warning.
func (a *JournalApp) AddPhoto(tripID int, rawPath string) (model.Photo, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return model.Photo{}, err
	}
	if _, ok := fs.ResolvePhotoPath(rawPath); !ok {
		a.logger.Warn("photo file not found, recording without metadata", "path", rawPath)
	}
	photo := a.service.Photos().Add(trip.ID, rawPath)
	a.changed()
	return photo, nil
}

// ImportPhotos adds every image under dir to a trip, skipping files matched
// by the configured ignore patterns or the directory's .vjignore.
func (a *JournalApp) ImportPhotos(tripID int, dir string, recursive bool) ([]model.Photo, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	paths, err := fs.FindImages(dir, recursive, a.cfg.Photos.Ignore)
	if err != nil {
		return nil, fmt.Errorf("finding images: %w", err)
	}

	photos := make([]model.Photo, 0, len(paths))
	for _, p := range paths {
		photos = append(photos, a.service.Photos().Add(trip.ID, p))
	}
	if len(photos) > 0 {
		a.changed()
	}
	a.logger.Info("photos imported", "trip", trip.ID, "dir", dir, "count", len(photos))
	return photos, nil
}

// ListPhotos returns a trip's photos in the order they were added.
func (a *JournalApp) ListPhotos(tripID int) ([]model.Photo, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Photos().ForTrip(trip.ID), nil
}

// TagPhoto adds a tag to a photo. Tagging twice is harmless.
func (a *JournalApp) TagPhoto(id int, tag string) error {
	if strings.TrimSpace(tag) == "" {
		return fmt.Errorf("tag is required")
	}
	return a.mutatePhoto(id, a.service.Photos().AddTag(id, tag))
}

// UntagPhoto removes a tag from a photo.
func (a *JournalApp) UntagPhoto(id int, tag string) error {
	if _, ok := a.service.Photos().Get(id); !ok {
		return fmt.Errorf("photo %d: %w", id, journal.ErrNotFound)
	}
	if a.service.Photos().RemoveTag(id, tag) {
		a.changed()
	}
	return nil
}

// SetPhotoNotes replaces a photo's notes.
func (a *JournalApp) SetPhotoNotes(id int, notes string) error {
	return a.mutatePhoto(id, a.service.Photos().UpdateNotes(id, notes))
}

// SetPhotoLocation replaces a photo's location.
func (a *JournalApp) SetPhotoLocation(id int, location string) error {
	return a.mutatePhoto(id, a.service.Photos().UpdateLocation(id, location))
}

// SetPhotoDate overrides a photo's capture date.
func (a *JournalApp) SetPhotoDate(id int, captured time.Time) error {
	return a.mutatePhoto(id, a.service.Photos().UpdateCaptureDate(id, captured))
}

func (a *JournalApp) mutatePhoto(id int, ok bool) error {
	if !ok {
		return fmt.Errorf("photo %d: %w", id, journal.ErrNotFound)
	}
	a.changed()
	return nil
}

// PhotoQuery selects photos. Only the first non-empty criterion in the order
// Tag, Location, Notes, date range is applied.
type PhotoQuery struct {
	Tag      string
	Location string
	Notes    string
	From, To time.Time // inclusive; both must be set
}

// SearchPhotos finds a trip's photos matching q.
func (a *JournalApp) SearchPhotos(tripID int, q PhotoQuery) ([]model.Photo, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	photos := a.service.Photos()
	switch {
	case q.Tag != "":
		return photos.SearchByTag(trip.ID, q.Tag), nil
	case q.Location != "":
		return photos.SearchByLocation(trip.ID, q.Location), nil
	case q.Notes != "":
		return photos.SearchByNotes(trip.ID, q.Notes), nil
	case !q.From.IsZero() && !q.To.IsZero():
		return photos.SearchByDateRange(trip.ID, q.From, q.To), nil
	default:
		return nil, fmt.Errorf("search needs a tag, location, notes text or a date range")
	}
}

// DeletePhoto removes a photo record. The file on disk is untouched.
func (a *JournalApp) DeletePhoto(id int) error {
	return a.mutatePhoto(id, a.service.Photos().Delete(id))
}

// --- expenses ---

// AddExpense records an expense for a trip (0 means the active trip).
// An empty currency uses the default_currency setting.
func (a *JournalApp) AddExpense(tripID int, amount decimal.Decimal, currency string, date time.Time, category, description string) (model.Expense, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return model.Expense{}, err
	}
	e := a.service.Expenses().Add(model.Expense{
		TripID:      trip.ID,
		Amount:      amount,
		Currency:    a.currencyOrDefault(currency),
		Date:        date,
		Category:    category,
		Description: description,
	})
	a.changed()
	return e, nil
}

// GetExpense returns one expense.
func (a *JournalApp) GetExpense(id int) (model.Expense, error) {
	e, ok := a.service.Expenses().Get(id)
	if !ok {
		return model.Expense{}, fmt.Errorf("expense %d: %w", id, journal.ErrNotFound)
	}
	return e, nil
}

// ListExpenses returns a trip's expenses in the order they were added.
func (a *JournalApp) ListExpenses(tripID int) ([]model.Expense, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Expenses().ForTrip(trip.ID), nil
}

// UpdateExpense overwrites the expense with e.ID. The trip cannot change.
func (a *JournalApp) UpdateExpense(e model.Expense) error {
	e.Currency = a.currencyOrDefault(e.Currency)
	if !a.service.Expenses().Update(e) {
		return fmt.Errorf("expense %d: %w", e.ID, journal.ErrNotFound)
	}
	a.changed()
	return nil
}

// DeleteExpense removes an expense.
func (a *JournalApp) DeleteExpense(id int) error {
	if !a.service.Expenses().Delete(id) {
		return fmt.Errorf("expense %d: %w", id, journal.ErrNotFound)
	}
	a.changed()
	return nil
}

// ExpenseTotal sums a trip's expenses in currency (default_currency when
// empty). Returns the total and the currency used.
func (a *JournalApp) ExpenseTotal(tripID int, currency string) (decimal.Decimal, string, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return decimal.Zero, "", err
	}
	currency = a.currencyOrDefault(currency)
	return a.service.Expenses().Total(trip.ID, currency), currency, nil
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ExpenseCategories breaks a trip's spending down by category, largest
// first, in currency (default_currency when empty).
func (a *JournalApp) ExpenseCategories(tripID int, currency string) ([]CategoryTotal, string, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, "", err
	}
	currency = a.currencyOrDefault(currency)

	var rows []CategoryTotal
	for cat, total := range a.service.Expenses().ByCategory(trip.ID, currency) {
		rows = append(rows, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, currency, nil
}

func (a *JournalApp) currencyOrDefault(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return a.cfg.Settings.DefaultCurrency
	}
	return code
}

// --- currency ---

// Rate is one entry of the exchange-rate table: units of Code per USD.
type Rate struct {
	Code string
	Rate decimal.Decimal
}

// Rates returns the exchange-rate table in its display order.
func (a *JournalApp) Rates() []Rate {
	table := a.service.Expenses().Rates()
	codes := a.service.Expenses().Currencies()
	out := make([]Rate, 0, len(codes))
	for _, code := range codes {
		out = append(out, Rate{Code: code, Rate: table[code]})
	}
	return out
}

// SetRate adds a currency or changes its rate.
func (a *JournalApp) SetRate(code string, rate decimal.Decimal) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("currency code is required")
	}
	if err := a.service.Expenses().SetRate(code, rate); err != nil {
		return fmt.Errorf("setting rate for %s: %w", code, err)
	}
	a.changed()
	return nil
}

// Convert converts amount between currencies. Unknown codes leave the
// amount unchanged.
func (a *JournalApp) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return a.service.Expenses().Convert(amount, strings.ToUpper(from), strings.ToUpper(to))
}

// --- notes ---

// AddNote writes a note for a trip (0 means the active trip).
func (a *JournalApp) AddNote(tripID int, title, content string, tags []string) (model.Note, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return model.Note{}, err
	}
	n := a.service.Notes().Add(trip.ID, title, content, tags)
	a.changed()
	return n, nil
}

// GetNote returns one note.
func (a *JournalApp) GetNote(id int) (model.Note, error) {
	n, ok := a.service.Notes().Get(id)
	if !ok {
		return model.Note{}, fmt.Errorf("note %d: %w", id, journal.ErrNotFound)
	}
	return n, nil
}

// ListNotes returns a trip's notes in the order they were written.
func (a *JournalApp) ListNotes(tripID int) ([]model.Note, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	return a.service.Notes().ForTrip(trip.ID), nil
}

// UpdateNote replaces a note's title, content and tags.
func (a *JournalApp) UpdateNote(id int, title, content string, tags []string) error {
	if !a.service.Notes().Update(id, title, content, tags) {
		return fmt.Errorf("note %d: %w", id, journal.ErrNotFound)
	}
	a.changed()
	return nil
}

// DeleteNote removes a note.
func (a *JournalApp) DeleteNote(id int) error {
	if !a.service.Notes().Delete(id) {
		return fmt.Errorf("note %d: %w", id, journal.ErrNotFound)
	}
	a.changed()
	return nil
}

// SearchNotes finds a trip's notes by tag when tag is set, otherwise by
// case-insensitive text in title or content.
func (a *JournalApp) SearchNotes(tripID int, text, tag string) ([]model.Note, error) {
	trip, err := a.service.ResolveTrip(tripID)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		return a.service.Notes().SearchByTag(trip.ID, tag), nil
	}
	return a.service.Notes().Search(trip.ID, text), nil
}
