package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		JournalID: "journal-abc",
		BaseDir:   "/home/user/.local/share/vj",
		LogDir:    "/home/user/.local/share/vj/log",
		Storage:   StorageConfig{Type: "sqlite", DataDir: "/home/user/.local/share/vj/data"},
		Archive:   ArchiveConfig{Type: "filesystem", Root: "/backup/vj"},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/vj/keys/vj.pub",
			PrivateKeyPath: "/home/user/.local/share/vj/keys/vj.key",
			Armor:          true,
		},
		Photos: PhotosConfig{Ignore: []string{"*.tmp", ".thumbnails"}},
		Settings: Settings{
			DefaultCurrency: "EUR",
			AutoSave:        false,
			Custom:          map[string]string{"theme": "dark"},
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.JournalID != original.JournalID {
		t.Errorf("JournalID = %q, want %q", got.JournalID, original.JournalID)
	}
	if got.Storage != original.Storage {
		t.Errorf("Storage = %+v, want %+v", got.Storage, original.Storage)
	}
	if got.Archive != original.Archive {
		t.Errorf("Archive = %+v, want %+v", got.Archive, original.Archive)
	}
	if got.Encryption != original.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
	}
	if len(got.Photos.Ignore) != 2 {
		t.Fatalf("len(Photos.Ignore) = %d, want 2", len(got.Photos.Ignore))
	}
	if got.Settings.DefaultCurrency != "EUR" {
		t.Errorf("Settings.DefaultCurrency = %q, want %q", got.Settings.DefaultCurrency, "EUR")
	}
	if got.Settings.AutoSave {
		t.Error("Settings.AutoSave = true, want false")
	}
	if got.Settings.Custom["theme"] != "dark" {
		t.Errorf("Settings.Custom[theme] = %q, want %q", got.Settings.Custom["theme"], "dark")
	}
}

func TestManager_Read_DefaultSettings(t *testing.T) {
	m := &Manager{}
	got, err := m.Read(strings.NewReader(`journal_id = "j1"`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Settings.DefaultCurrency != "USD" {
		t.Errorf("Settings.DefaultCurrency = %q, want %q", got.Settings.DefaultCurrency, "USD")
	}
	if !got.Settings.AutoSave {
		t.Error("Settings.AutoSave = false, want true")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("journal-1", "/data/vj")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"JournalID", cfg.JournalID, "journal-1"},
		{"BaseDir", cfg.BaseDir, "/data/vj"},
		{"LogDir", cfg.LogDir, "/data/vj/log"},
		{"Storage.Type", cfg.Storage.Type, "json"},
		{"Storage.DataDir", cfg.Storage.DataDir, "/data/vj/data"},
		{"Archive.Root", cfg.Archive.Root, "/data/vj/archive"},
		{"Encryption.PublicKeyPath", cfg.Encryption.PublicKeyPath, "/data/vj/keys/vj.pub"},
		{"Encryption.PrivateKeyPath", cfg.Encryption.PrivateKeyPath, "/data/vj/keys/vj.key"},
		{"Settings.DefaultCurrency", cfg.Settings.DefaultCurrency, "USD"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestSettings_Update(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(Settings) bool
		wantErr bool
	}{
		{
			name:  "default currency upper-cased",
			key:   "defaultCurrency",
			value: " eur ",
			check: func(s Settings) bool { return s.DefaultCurrency == "EUR" },
		},
		{
			name:  "auto save snake case",
			key:   "auto_save",
			value: "false",
			check: func(s Settings) bool { return !s.AutoSave },
		},
		{
			name:    "auto save rejects garbage",
			key:     "AutoSave",
			value:   "maybe",
			wantErr: true,
		},
		{
			name:  "unknown key becomes custom",
			key:   "homeAirport",
			value: "YVR",
			check: func(s Settings) bool { return s.Custom["homeAirport"] == "YVR" },
		},
		{
			name:    "empty key",
			key:     "",
			value:   "x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := s.Update(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(s) {
				t.Errorf("Update(%q, %q) left settings %+v", tt.key, tt.value, s)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vj.toml")
		cfg := NewConfig("j1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vj.toml")
		cfg := NewConfig("j1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vj.toml")
		cfg := NewConfig("j1", dir)
		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		cfg.Settings.DefaultCurrency = "JPY"
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Settings.DefaultCurrency != "JPY" {
			t.Errorf("Settings.DefaultCurrency = %q, want %q", got.Settings.DefaultCurrency, "JPY")
		}
	})

	t.Run("fails when file is missing", func(t *testing.T) {
		dir := t.TempDir()
		if err := Save(filepath.Join(dir, "missing.toml"), NewConfig("j1", dir)); err == nil {
			t.Fatal("Save() expected error for missing file")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vj.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Storage = StorageConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.JournalID != "read-test" {
			t.Errorf("JournalID = %q, want %q", got.JournalID, "read-test")
		}
		if got.Storage.Type != "memory" {
			t.Errorf("Storage.Type = %q, want %q", got.Storage.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/vj.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
