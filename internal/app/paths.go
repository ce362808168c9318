package app

import (
	"fmt"
	"os"
	"path/filepath"

	"vj-go/internal/config"
	"vj-go/internal/storage"
)

// Paths locate the config file and the data home a new journal is created in.
type Paths struct {
	ConfigFile string
	Home       string
}

// ResolvePaths finds where vj keeps its files.
//
// The config file is VJ_CONFIG_PATH, else $XDG_CONFIG_HOME/vj.toml, else
// ~/.config/vj.toml. The data home is VJ_HOME, else $XDG_DATA_HOME/vj, else
// ~/.local/share/vj.
func ResolvePaths() (Paths, error) {
	configFile, err := envOrHome("VJ_CONFIG_PATH", "XDG_CONFIG_HOME", "vj.toml", ".config")
	if err != nil {
		return Paths{}, err
	}
	home, err := envOrHome("VJ_HOME", "XDG_DATA_HOME", "vj", ".local", "share")
	if err != nil {
		return Paths{}, err
	}
	return Paths{ConfigFile: configFile, Home: home}, nil
}

func envOrHome(override, xdg, name string, fallback ...string) (string, error) {
	if path := os.Getenv(override); path != "" {
		return path, nil
	}
	if dir := os.Getenv(xdg); dir != "" {
		return filepath.Join(dir, name), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append(append([]string{homeDir}, fallback...), name)...), nil
}

// NewConfig returns the config for a new journal stored under p.Home.
func (p Paths) NewConfig(journalID string) *config.Config {
	return config.NewConfig(journalID, p.Home)
}

// JournalFile returns the file cfg keeps the journal in, or "" for memory
// storage.
func JournalFile(cfg *config.Config) (string, error) {
	return storage.DataFile(cfg.Storage, cfg.JournalID)
}

// LogFile returns the session log for cfg. A config without log_dir logs
// under base_dir.
func LogFile(cfg *config.Config) string {
	dir := cfg.LogDir
	if dir == "" {
		dir = filepath.Join(cfg.BaseDir, "log")
	}
	return filepath.Join(dir, "vj.log")
}
