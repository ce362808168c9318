package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"vj-go/internal/config"
	"vj-go/internal/journal"
)

// DataFile returns the file a file-backed store keeps the journal in, named
// after the journal ID inside data_dir. Memory storage has no file and
// returns "".
func DataFile(cfg config.StorageConfig, journalID string) (string, error) {
	switch cfg.Type {
	case "json", "", "sqlite":
		if cfg.DataDir == "" {
			return "", fmt.Errorf("data_dir required for %s storage", typeOrDefault(cfg.Type))
		}
		ext := ".json"
		if cfg.Type == "sqlite" {
			ext = ".db"
		}
		return filepath.Join(cfg.DataDir, journalID+ext), nil
	case "memory":
		return "", nil
	default:
		return "", fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStorageFromConfig creates a Storage based on the storage config type.
func NewStorageFromConfig(cfg config.StorageConfig, journalID string) (journal.Storage, error) {
	path, err := DataFile(cfg, journalID)
	if err != nil {
		return nil, err
	}
	switch cfg.Type {
	case "sqlite":
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStorage(path)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return NewJSONStorage(path), nil
	}
}

func typeOrDefault(t string) string {
	if t == "" {
		return "json"
	}
	return t
}

func sortedCodes(rates map[string]decimal.Decimal) []string {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
