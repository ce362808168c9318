package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"vj-go/internal/journal"
)

const snapshotExt = ".vjbak"

// FileSystemArchive keeps versioned snapshots in a directory tree:
//
//	<root>/
//	  <journalID>/
//	    1.vjbak
//	    2.vjbak
//
// The highest version is the current one. At most keep versions are
// retained per journal; older ones are pruned after each put.
type FileSystemArchive struct {
	root string
	keep int
}

var _ journal.Archive = (*FileSystemArchive)(nil)

// DefaultKeep is the number of snapshots retained per journal.
const DefaultKeep = 5

// NewFileSystemArchive creates an archive rooted at root, creating it if needed.
// keep <= 0 selects DefaultKeep.
func NewFileSystemArchive(root string, keep int) (*FileSystemArchive, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive root: %w", err)
	}
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &FileSystemArchive{root: root, keep: keep}, nil
}

// PutSnapshot writes a new version atomically. version must be greater than
// the current one.
func (a *FileSystemArchive) PutSnapshot(journalID string, r io.Reader, size int64, version int64) error {
	current, err := a.SnapshotVersion(journalID)
	if err != nil {
		return err
	}
	if version <= current {
		return fmt.Errorf("stale snapshot version %d, archive has %d", version, current)
	}

	dir := filepath.Join(a.root, journalID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	if err := writeFile(a.snapshotPath(journalID, version), r, size); err != nil {
		return err
	}
	return a.prune(journalID)
}

// GetSnapshot writes the current version to w.
func (a *FileSystemArchive) GetSnapshot(journalID string, w io.Writer) error {
	version, err := a.SnapshotVersion(journalID)
	if err != nil {
		return err
	}
	if version == 0 {
		return fmt.Errorf("no snapshot for journal: %s", journalID)
	}

	f, err := os.Open(a.snapshotPath(journalID, version))
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// SnapshotVersion returns the highest stored version, or 0.
func (a *FileSystemArchive) SnapshotVersion(journalID string) (int64, error) {
	versions, err := a.versions(journalID)
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, nil
	}
	return versions[len(versions)-1], nil
}

// ValidateSetup verifies that the archive root is a writable directory.
func (a *FileSystemArchive) ValidateSetup() error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("archive root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root is not a directory: %s", a.root)
	}

	probe, err := os.CreateTemp(a.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("archive root not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

// versions lists stored versions ascending. Files that do not parse as a
// version are ignored.
func (a *FileSystemArchive) versions(journalID string) ([]int64, error) {
	entries, err := os.ReadDir(filepath.Join(a.root, journalID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	var out []int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSuffix(name, snapshotExt), 10, 64)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (a *FileSystemArchive) prune(journalID string) error {
	versions, err := a.versions(journalID)
	if err != nil {
		return err
	}
	for len(versions) > a.keep {
		if err := os.Remove(a.snapshotPath(journalID, versions[0])); err != nil {
			return fmt.Errorf("pruning snapshot %d: %w", versions[0], err)
		}
		versions = versions[1:]
	}
	return nil
}

func (a *FileSystemArchive) snapshotPath(journalID string, version int64) string {
	return filepath.Join(a.root, journalID, strconv.FormatInt(version, 10)+snapshotExt)
}

// writeFile writes r to destPath through a temp file and rename.
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}
