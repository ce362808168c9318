package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/config"
	"vj-go/internal/journal"
	"vj-go/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig("journal-test", t.TempDir())
	cfg.Archive.Type = "memory"
	cfg.Encryption.Type = "test"
	return cfg
}

func openApp(t *testing.T, cfg *config.Config) *JournalApp {
	t.Helper()
	a, err := newJournalApp(cfg, NewSession("test", time.Now()), journal.NewNopLogger(), testutil.FixedClock())
	if err != nil {
		t.Fatalf("newJournalApp() error = %v", err)
	}
	return a
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("image"), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestJournalApp_FirstTripBecomesActive(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	first, err := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}
	second, err := a.CreateTrip("Japan", "Kyoto", day(10), day(20))
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}

	if !first.IsActive || second.IsActive {
		t.Errorf("active flags = %v, %v, want true, false", first.IsActive, second.IsActive)
	}
	got, err := a.GetTrip(0)
	if err != nil {
		t.Fatalf("GetTrip(0) error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("active trip = %d, want %d", got.ID, first.ID)
	}

	if err := a.UseTrip(second.ID); err != nil {
		t.Fatalf("UseTrip() error = %v", err)
	}
	if got, _ := a.GetTrip(0); got.ID != second.ID {
		t.Errorf("active trip after UseTrip = %d, want %d", got.ID, second.ID)
	}
}

func TestJournalApp_CreateTripValidation(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	tests := []struct {
		name       string
		trip       string
		start, end time.Time
	}{
		{"blank name", "  ", day(1), day(2)},
		{"ends before start", "Backwards", day(5), day(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.CreateTrip(tt.trip, "", tt.start, tt.end); err == nil {
				t.Error("CreateTrip() expected error")
			}
		})
	}
}

func TestJournalApp_NoActiveTrip(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	_, err := a.AddExpense(0, decimal.NewFromInt(5), "", day(1), "Food", "Snack")
	if !errors.Is(err, journal.ErrNoActiveTrip) {
		t.Errorf("AddExpense() error = %v, want ErrNoActiveTrip", err)
	}
}

func TestJournalApp_UnknownRecords(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	checks := map[string]error{
		"TagPhoto":      a.TagPhoto(9, "x"),
		"SetPhotoNotes": a.SetPhotoNotes(9, "x"),
		"DeletePhoto":   a.DeletePhoto(9),
		"DeleteExpense": a.DeleteExpense(9),
		"DeleteNote":    a.DeleteNote(9),
		"EditLog":       a.EditLog(9, "x"),
	}
	for name, err := range checks {
		if !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("%s() error = %v, want ErrNotFound", name, err)
		}
	}
	if err := a.UseTrip(9); !errors.Is(err, journal.ErrTripNotFound) {
		t.Errorf("UseTrip() error = %v, want ErrTripNotFound", err)
	}
}

func TestJournalApp_ExpensesUseDefaultCurrency(t *testing.T) {
	cfg := testConfig(t)
	cfg.Settings.DefaultCurrency = "EUR"
	a := openApp(t, cfg)
	defer a.Close()

	trip, _ := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))
	e, err := a.AddExpense(trip.ID, decimal.RequireFromString("85"), "", day(2), "Food", "Dinner")
	if err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if e.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", e.Currency)
	}
	if _, err := a.AddExpense(trip.ID, decimal.RequireFromString("10"), "usd", day(2), "Transport", "Tram"); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	total, cur, err := a.ExpenseTotal(trip.ID, "")
	if err != nil {
		t.Fatalf("ExpenseTotal() error = %v", err)
	}
	if cur != "EUR" || total.StringFixed(2) != "93.50" {
		t.Errorf("ExpenseTotal() = %s %s, want 93.50 EUR", total.StringFixed(2), cur)
	}

	rows, _, err := a.ExpenseCategories(trip.ID, "USD")
	if err != nil {
		t.Fatalf("ExpenseCategories() error = %v", err)
	}
	if len(rows) != 2 || rows[0].Category != "Food" || rows[0].Total.StringFixed(2) != "100.00" {
		t.Errorf("ExpenseCategories() = %+v", rows)
	}
}

func TestJournalApp_SetRate(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	if err := a.SetRate("chf", decimal.RequireFromString("0.9")); err != nil {
		t.Fatalf("SetRate() error = %v", err)
	}
	rates := a.Rates()
	last := rates[len(rates)-1]
	if last.Code != "CHF" || last.Rate.String() != "0.9" {
		t.Errorf("last rate = %+v, want CHF 0.9", last)
	}
	if got := a.Convert(decimal.RequireFromString("9"), "chf", "usd"); got.StringFixed(2) != "10.00" {
		t.Errorf("Convert() = %s, want 10.00", got.StringFixed(2))
	}
	if err := a.SetRate("XYZ", decimal.Zero); err == nil {
		t.Error("SetRate() with zero rate: expected error")
	}
}

func TestJournalApp_PhotoImportAndSearch(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()
	trip, _ := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))

	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.png", "notes.txt", ".hidden.jpg"} {
		writeFile(t, filepath.Join(dir, name))
	}

	photos, err := a.ImportPhotos(trip.ID, dir, true)
	if err != nil {
		t.Fatalf("ImportPhotos() error = %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("imported %d photos, want 2", len(photos))
	}

	if err := a.SetPhotoLocation(photos[0].ID, "Alfama, Lisbon"); err != nil {
		t.Fatalf("SetPhotoLocation() error = %v", err)
	}
	if err := a.TagPhoto(photos[1].ID, "tram"); err != nil {
		t.Fatalf("TagPhoto() error = %v", err)
	}

	byLocation, _ := a.SearchPhotos(trip.ID, PhotoQuery{Location: "alfama"})
	if len(byLocation) != 1 || byLocation[0].ID != photos[0].ID {
		t.Errorf("search by location = %+v", byLocation)
	}
	byTag, _ := a.SearchPhotos(trip.ID, PhotoQuery{Tag: "tram"})
	if len(byTag) != 1 || byTag[0].ID != photos[1].ID {
		t.Errorf("search by tag = %+v", byTag)
	}
	if _, err := a.SearchPhotos(trip.ID, PhotoQuery{}); err == nil {
		t.Error("SearchPhotos() with empty query: expected error")
	}
}

func TestJournalApp_DailyLog(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()
	trip, _ := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))

	at := time.Date(2024, 6, 2, 13, 5, 0, 0, time.UTC)
	if _, err := a.AddExpense(trip.ID, decimal.RequireFromString("12.50"), "USD", at, "Food", "Lunch"); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}

	entry, err := a.ShowLog(trip.ID, day(2))
	if err != nil {
		t.Fatalf("ShowLog() error = %v", err)
	}
	if !strings.Contains(entry.Text(), "- 1 expense recorded ($12.50 USD)") {
		t.Errorf("summary = %q", entry.Text())
	}

	if err := a.EditLog(entry.ID, "Best lunch ever."); err != nil {
		t.Fatalf("EditLog() error = %v", err)
	}
	logs, _ := a.ListLogs(trip.ID)
	if len(logs) != 1 || logs[0].Text() != "Best lunch ever." || logs[0].IsAutoGenerated() {
		t.Errorf("ListLogs() = %+v", logs)
	}

	unpinned, err := a.UnpinLog(entry.ID)
	if err != nil {
		t.Fatalf("UnpinLog() error = %v", err)
	}
	if !unpinned.IsAutoGenerated() || unpinned.Text() == "Best lunch ever." {
		t.Errorf("UnpinLog() = %+v", unpinned)
	}

	csv, err := a.ExportLog(trip.ID, day(2), "CSV")
	if err != nil {
		t.Fatalf("ExportLog() error = %v", err)
	}
	if want := "Time,Type,Description\n13:05,\"Expense\",\"12.50 USD - Food - Lunch\"\n"; csv != want {
		t.Errorf("ExportLog() =\n%q\nwant\n%q", csv, want)
	}
	if _, err := a.ExportLog(trip.ID, day(2), "pdf"); err == nil {
		t.Error("ExportLog() with unknown format: expected error")
	}

	next, ok, err := a.AdjacentActivityDate(trip.ID, day(1), true)
	if err != nil || !ok || !next.Equal(day(2)) {
		t.Errorf("AdjacentActivityDate() = %v, %v, %v", next, ok, err)
	}
	if _, ok, _ := a.AdjacentActivityDate(trip.ID, day(2), true); ok {
		t.Error("AdjacentActivityDate() past the last day should report false")
	}
}

func TestJournalApp_AutoSave(t *testing.T) {
	tests := []struct {
		name      string
		autoSave  bool
		explicit  bool
		wantTrips int
	}{
		{name: "auto save on", autoSave: true, wantTrips: 1},
		{name: "auto save off discards", autoSave: false, wantTrips: 0},
		{name: "explicit save without auto save", autoSave: false, explicit: true, wantTrips: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Settings.AutoSave = tt.autoSave

			a := openApp(t, cfg)
			if _, err := a.CreateTrip("Portugal", "Lisbon", day(1), day(7)); err != nil {
				t.Fatalf("CreateTrip() error = %v", err)
			}
			if tt.explicit {
				if err := a.Save(); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}
			if err := a.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			reopened := openApp(t, cfg)
			defer reopened.Close()
			if got := len(reopened.ListTrips()); got != tt.wantTrips {
				t.Errorf("trips after reopen = %d, want %d", got, tt.wantTrips)
			}
		})
	}
}

func TestJournalApp_SQLiteStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Type = "sqlite"

	a := openApp(t, cfg)
	trip, _ := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))
	if _, err := a.AddNote(trip.ID, "Arrival", "Late flight", []string{"travel"}); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := openApp(t, cfg)
	defer reopened.Close()
	notes, err := reopened.SearchNotes(0, "", "travel")
	if err != nil {
		t.Fatalf("SearchNotes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Arrival" {
		t.Errorf("SearchNotes() = %+v", notes)
	}
}

func TestJournalApp_BackupRestore(t *testing.T) {
	a := openApp(t, testConfig(t))
	defer a.Close()

	if err := a.InitBackup("secret"); err != nil {
		t.Fatalf("InitBackup() error = %v", err)
	}

	trip, _ := a.CreateTrip("Portugal", "Lisbon", day(1), day(7))
	version, err := a.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	if err := a.DeleteTrip(trip.ID); err != nil {
		t.Fatalf("DeleteTrip() error = %v", err)
	}
	restored, err := a.RestoreBackup("secret")
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored != 1 {
		t.Errorf("restored version = %d, want 1", restored)
	}
	if got := len(a.ListTrips()); got != 1 {
		t.Errorf("trips after restore = %d, want 1", got)
	}
}

func TestNewJournalApp_RequiresJournalID(t *testing.T) {
	cfg := testConfig(t)
	cfg.JournalID = ""
	_, err := newJournalApp(cfg, NewSession("test", time.Now()), journal.NewNopLogger(), testutil.FixedClock())
	if err == nil {
		t.Fatal("newJournalApp() without journal_id: expected error")
	}
}
