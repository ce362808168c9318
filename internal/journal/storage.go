package journal

import "vj-go/internal/model"

// Storage persists the whole journal as a single snapshot.
type Storage interface {
	// Load returns the last saved snapshot.
	// Returns nil and no error if nothing has been saved yet.
	Load() (*model.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(snapshot *model.Snapshot) error

	// Close releases any underlying resources.
	Close() error
}
