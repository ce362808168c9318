package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/journal"
	"vj-go/internal/model"
	"vj-go/internal/storage/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage keeps the journal in a SQLite database, one table per
// collection. Save rewrites every table inside a single transaction.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

var _ journal.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (creating if needed) the database at path and
// brings its schema up to date. path can be ":memory:".
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return &SQLiteStorage{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// A single connection is used so ":memory:" databases persist across calls
// and the foreign_keys pragma applies to every statement.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Load reads every table. An entirely empty database loads as nil.
func (s *SQLiteStorage) Load() (*model.Snapshot, error) {
	snap := &model.Snapshot{}
	var err error

	if snap.Trips, err = s.loadTrips(); err != nil {
		return nil, err
	}
	if snap.Photos, err = s.loadPhotos(); err != nil {
		return nil, err
	}
	if snap.Expenses, err = s.loadExpenses(); err != nil {
		return nil, err
	}
	if snap.Notes, err = s.loadNotes(); err != nil {
		return nil, err
	}
	if snap.DailyLogs, err = s.loadDailyLogs(); err != nil {
		return nil, err
	}
	if snap.ExchangeRates, err = s.loadRates(); err != nil {
		return nil, err
	}

	if len(snap.Trips)+len(snap.Photos)+len(snap.Expenses)+len(snap.Notes)+len(snap.DailyLogs)+len(snap.ExchangeRates) == 0 {
		return nil, nil
	}
	return snap, nil
}

// Save replaces the database contents with snap.
func (s *SQLiteStorage) Save(snap *model.Snapshot) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"photo_tags", "note_tags", "photos", "notes", "expenses", "daily_logs", "trips", "exchange_rates"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, t := range snap.Trips {
		if _, err = tx.Exec(
			"INSERT INTO trips (id, name, destination, start_date, end_date, is_active) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.Name, t.Destination, formatTime(t.StartDate), formatTime(t.EndDate), t.IsActive,
		); err != nil {
			return fmt.Errorf("inserting trip %d: %w", t.ID, err)
		}
	}

	for _, p := range snap.Photos {
		if _, err = tx.Exec(
			"INSERT INTO photos (id, trip_id, file_path, capture_date, location, notes) VALUES (?, ?, ?, ?, ?, ?)",
			p.ID, p.TripID, p.FilePath, formatTime(p.CaptureDate), p.Location, p.Notes,
		); err != nil {
			return fmt.Errorf("inserting photo %d: %w", p.ID, err)
		}
		if err = insertTags(tx, "photo_tags", "photo_id", p.ID, p.Tags); err != nil {
			return err
		}
	}

	for _, e := range snap.Expenses {
		if _, err = tx.Exec(
			"INSERT INTO expenses (id, trip_id, amount, description, currency, date, category) VALUES (?, ?, ?, ?, ?, ?, ?)",
			e.ID, e.TripID, model.FormatAmount(e.Amount), e.Description, e.Currency, formatTime(e.Date), e.Category,
		); err != nil {
			return fmt.Errorf("inserting expense %d: %w", e.ID, err)
		}
	}

	for _, n := range snap.Notes {
		if _, err = tx.Exec(
			"INSERT INTO notes (id, trip_id, title, content, created_date) VALUES (?, ?, ?, ?, ?)",
			n.ID, n.TripID, n.Title, n.Content, formatTime(n.CreatedDate),
		); err != nil {
			return fmt.Errorf("inserting note %d: %w", n.ID, err)
		}
		if err = insertTags(tx, "note_tags", "note_id", n.ID, n.Tags); err != nil {
			return err
		}
	}

	for _, l := range snap.DailyLogs {
		if _, err = tx.Exec(
			"INSERT INTO daily_logs (id, trip_id, date, summary, is_auto_generated) VALUES (?, ?, ?, ?, ?)",
			l.ID, l.TripID, l.Date.Format(model.DateLayout), l.Text(), l.IsAutoGenerated(),
		); err != nil {
			return fmt.Errorf("inserting daily log %d: %w", l.ID, err)
		}
	}

	for i, code := range sortedCodes(snap.ExchangeRates) {
		if _, err = tx.Exec(
			"INSERT INTO exchange_rates (code, rate, position) VALUES (?, ?, ?)",
			code, snap.ExchangeRates[code].String(), i,
		); err != nil {
			return fmt.Errorf("inserting rate %s: %w", code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing journal: %w", err)
	}
	return nil
}

func insertTags(tx *sql.Tx, table, column string, ownerID int, tags []string) error {
	for i, tag := range tags {
		query := "INSERT INTO " + table + " (" + column + ", position, tag) VALUES (?, ?, ?)"
		if _, err := tx.Exec(query, ownerID, i, tag); err != nil {
			return fmt.Errorf("inserting %s for %d: %w", table, ownerID, err)
		}
	}
	return nil
}

func (s *SQLiteStorage) loadTrips() ([]model.Trip, error) {
	rows, err := s.db.Query("SELECT id, name, destination, start_date, end_date, is_active FROM trips ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying trips: %w", err)
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		var start, end string
		if err := rows.Scan(&t.ID, &t.Name, &t.Destination, &start, &end, &t.IsActive); err != nil {
			return nil, fmt.Errorf("scanning trip: %w", err)
		}
		if t.StartDate, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("trip %d start date: %w", t.ID, err)
		}
		if t.EndDate, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("trip %d end date: %w", t.ID, err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *SQLiteStorage) loadPhotos() ([]model.Photo, error) {
	tags, err := s.loadTags("photo_tags", "photo_id")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT id, trip_id, file_path, capture_date, location, notes FROM photos ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		var captured string
		if err := rows.Scan(&p.ID, &p.TripID, &p.FilePath, &captured, &p.Location, &p.Notes); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		if p.CaptureDate, err = parseTime(captured); err != nil {
			return nil, fmt.Errorf("photo %d capture date: %w", p.ID, err)
		}
		p.Tags = tagsOrEmpty(tags[p.ID])
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *SQLiteStorage) loadExpenses() ([]model.Expense, error) {
	rows, err := s.db.Query("SELECT id, trip_id, amount, description, currency, date, category FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount, date string
		if err := rows.Scan(&e.ID, &e.TripID, &amount, &e.Description, &e.Currency, &date, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("expense %d amount: %w", e.ID, err)
		}
		if e.Date, err = parseTime(date); err != nil {
			return nil, fmt.Errorf("expense %d date: %w", e.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *SQLiteStorage) loadNotes() ([]model.Note, error) {
	tags, err := s.loadTags("note_tags", "note_id")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT id, trip_id, title, content, created_date FROM notes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		var created string
		if err := rows.Scan(&n.ID, &n.TripID, &n.Title, &n.Content, &created); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if n.CreatedDate, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("note %d created date: %w", n.ID, err)
		}
		n.Tags = tagsOrEmpty(tags[n.ID])
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLiteStorage) loadDailyLogs() ([]model.DailyLogEntry, error) {
	rows, err := s.db.Query("SELECT id, trip_id, date, summary, is_auto_generated FROM daily_logs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying daily logs: %w", err)
	}
	defer rows.Close()

	var logs []model.DailyLogEntry
	for rows.Next() {
		var (
			id, tripID int
			date, text string
			auto       bool
		)
		if err := rows.Scan(&id, &tripID, &date, &text, &auto); err != nil {
			return nil, fmt.Errorf("scanning daily log: %w", err)
		}
		day, err := model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("daily log %d: %w", id, err)
		}
		logs = append(logs, model.NewDailyLogEntry(id, tripID, day, text, auto))
	}
	return logs, rows.Err()
}

func (s *SQLiteStorage) loadRates() (map[string]decimal.Decimal, error) {
	rows, err := s.db.Query("SELECT code, rate FROM exchange_rates ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying exchange rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code, rate string
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, fmt.Errorf("scanning exchange rate: %w", err)
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("exchange rate %s: %w", code, err)
		}
		rates[code] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, nil
	}
	return rates, nil
}

// loadTags returns owner id -> tags in stored position order.
func (s *SQLiteStorage) loadTags(table, column string) (map[int][]string, error) {
	rows, err := s.db.Query("SELECT " + column + ", tag FROM " + table + " ORDER BY " + column + ", position")
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	tags := make(map[int][]string)
	for rows.Next() {
		var id int
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
