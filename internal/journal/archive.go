package journal

import "io"

// Archive stores encrypted journal snapshots away from the live data file.
// All operations use io.Reader/io.Writer so backends can stream.
type Archive interface {
	// PutSnapshot stores the snapshot for a journal, replacing any previous one.
	// size is the number of bytes that will be read from r.
	// version is stored alongside the snapshot for consistency checks.
	PutSnapshot(journalID string, r io.Reader, size int64, version int64) error

	// GetSnapshot retrieves the stored snapshot for a journal and writes it to w.
	GetSnapshot(journalID string, w io.Writer) error

	// SnapshotVersion returns the version of the stored snapshot.
	// Returns 0 if nothing has been stored for this journal.
	SnapshotVersion(journalID string) (int64, error)

	// ValidateSetup verifies that the archive is accessible and properly configured.
	ValidateSetup() error
}
