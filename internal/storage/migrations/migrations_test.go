package migrations

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{
		"trips", "photos", "photo_tags", "expenses", "notes", "note_tags",
		"daily_logs", "exchange_rates", "schema_migrations",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s was not created: %v", table, err)
		}
	}
}

func TestCheckDBMigrationStatus(t *testing.T) {
	t.Run("fresh database needs migration", func(t *testing.T) {
		db := openTestDB(t)
		if err := CheckDBMigrationStatus(db); !errors.Is(err, ErrNoSchema) {
			t.Errorf("CheckDBMigrationStatus() error = %v, want %v", err, ErrNoSchema)
		}
	})

	t.Run("up to date after migration", func(t *testing.T) {
		db := openTestDB(t)
		if err := MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() failed: %v", err)
		}
		if err := CheckDBMigrationStatus(db); err != nil {
			t.Errorf("CheckDBMigrationStatus() error = %v", err)
		}
	})
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("second MigrateUp() failed: %v", err)
	}
}

func TestLatestVersion(t *testing.T) {
	v, err := LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if v != 2 {
		t.Errorf("LatestVersion() = %d, want 2", v)
	}
}

func TestSchema_DailyLogUniquePerTripDay(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	insert := "INSERT INTO daily_logs (id, trip_id, date, summary, is_auto_generated) VALUES (?, 1, '2024-06-02', 'x', 1)"
	if _, err := db.Exec(insert, 1); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(insert, 2); err == nil {
		t.Error("expected unique constraint violation for duplicate trip-day")
	}
}

func TestSchema_TagsCascadeWithPhoto(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	mustExec(t, db, "INSERT INTO photos (id, trip_id, file_path, capture_date) VALUES (1, 99, '/p.jpg', '2024-06-02T09:00:00Z')")
	mustExec(t, db, "INSERT INTO photo_tags (photo_id, position, tag) VALUES (1, 0, 'beach')")
	mustExec(t, db, "DELETE FROM photos WHERE id = 1")

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM photo_tags").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("photo_tags rows = %d, want 0", n)
	}

	if _, err := db.Exec("INSERT INTO photo_tags (photo_id, position, tag) VALUES (42, 0, 'orphan')"); err == nil {
		t.Error("expected foreign key violation for tag on missing photo")
	}
}

func mustExec(t *testing.T, db *sql.DB, query string) {
	t.Helper()
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("Exec(%q) error = %v", query, err)
	}
}

// openTestDB opens an in-memory SQLite database with foreign keys enforced.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	return db
}
