package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vj-go/internal/journal"
	"vj-go/internal/model"
)

// JSONStorage keeps the journal in a single indented JSON document:
//
//	{"trips": [...], "photos": [...], "expenses": [...], "notes": [...],
//	 "dailyLogs": [...], "exchangeRates": {...}}
//
// Property names are matched case-insensitively on load.
type JSONStorage struct {
	path string
}

var _ journal.Storage = (*JSONStorage)(nil)

// NewJSONStorage creates a storage backed by the file at path. The file and
// its directory are created on the first Save.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the data file location.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the data file. A missing or blank file loads as nil.
func (s *JSONStorage) Load() (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save writes snap through a temp file and rename so a failed write never
// truncates the previous data.
func (s *JSONStorage) Save(snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vj-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *JSONStorage) Close() error {
	return nil
}
