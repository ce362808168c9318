package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for vj.
type Config struct {
	JournalID  string           `toml:"journal_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Storage    StorageConfig    `toml:"storage"`
	Archive    ArchiveConfig    `toml:"archive"`
	Encryption EncryptionConfig `toml:"encryption"`
	Photos     PhotosConfig     `toml:"photos"`
	Settings   Settings         `toml:"settings"`
}

// StorageConfig selects where the live journal is kept.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type    string `toml:"type"`               // "json" (default), "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // not used for type=memory
}

// ArchiveConfig selects where encrypted backups are kept.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ArchiveConfig struct {
	Type string `toml:"type"`           // "filesystem" or "memory"
	Root string `toml:"root,omitempty"` // only used for type=filesystem
	Keep int    `toml:"keep,omitempty"` // snapshots retained per journal, filesystem only
}

// EncryptionConfig holds paths to the age key pair used for backups.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
	Armor          bool   `toml:"armor"` // ASCII-armored backups
}

// PhotosConfig holds settings for photo directory import.
type PhotosConfig struct {
	Ignore []string `toml:"ignore"`
}

// Settings are the user preferences editable with `vj config set`.
type Settings struct {
	DefaultCurrency string            `toml:"default_currency"`
	AutoSave        bool              `toml:"auto_save"`
	Custom          map[string]string `toml:"custom,omitempty"`
}

// DefaultSettings returns USD with auto-save on.
func DefaultSettings() Settings {
	return Settings{DefaultCurrency: "USD", AutoSave: true}
}

// Update sets a preference by key. Keys are matched case-insensitively and
// "_" is ignored, so "autoSave", "auto_save" and "AUTOSAVE" are equivalent.
// Unknown keys are stored as custom settings.
func (s *Settings) Update(key, value string) error {
	switch strings.ToLower(strings.ReplaceAll(key, "_", "")) {
	case "defaultcurrency":
		s.DefaultCurrency = strings.ToUpper(strings.TrimSpace(value))
	case "autosave":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_save must be true or false: %q", value)
		}
		s.AutoSave = b
	default:
		if key == "" {
			return fmt.Errorf("setting key must not be empty")
		}
		if s.Custom == nil {
			s.Custom = make(map[string]string)
		}
		s.Custom[key] = value
	}
	return nil
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(journalID, baseDir string) *Config {
	return &Config{
		JournalID: journalID,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		Storage: StorageConfig{
			Type:    "json",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Archive: ArchiveConfig{
			Type: "filesystem",
			Root: filepath.Join(baseDir, "archive"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "vj.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "vj.key"),
		},
		Photos: PhotosConfig{
			Ignore: []string{".*", "Thumbs.db"},
		},
		Settings: DefaultSettings(),
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Missing settings fall back
// to DefaultSettings.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Config{Settings: DefaultSettings()}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Settings.DefaultCurrency == "" {
		cfg.Settings.DefaultCurrency = "USD"
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// Save overwrites an existing config file.
func Save(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file not found at %s: %w", path, err)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
