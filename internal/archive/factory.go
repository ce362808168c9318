package archive

import (
	"fmt"

	"vj-go/internal/config"
	"vj-go/internal/journal"
)

// NewArchiveFromConfig creates an Archive based on the archive config type.
func NewArchiveFromConfig(cfg config.ArchiveConfig) (journal.Archive, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryArchive(), nil
	case "filesystem", "":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem archive requires root to be set")
		}
		return NewFileSystemArchive(cfg.Root, cfg.Keep)
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
