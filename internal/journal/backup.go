package journal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"vj-go/internal/model"
)

// Backup encrypts the current journal and stores it in the archive under
// journalID with the next version number. Returns the stored version.
func (s *JournalService) Backup(archive Archive, enc Encryptor, journalID string) (int64, error) {
	plain, err := json.Marshal(s.Snapshot())
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	var sealed bytes.Buffer
	if err := enc.Encrypt(bytes.NewReader(plain), &sealed); err != nil {
		return 0, fmt.Errorf("encrypting snapshot: %w", err)
	}

	current, err := archive.SnapshotVersion(journalID)
	if err != nil {
		return 0, fmt.Errorf("reading archive version: %w", err)
	}
	version := current + 1

	if err := archive.PutSnapshot(journalID, &sealed, int64(sealed.Len()), version); err != nil {
		return 0, fmt.Errorf("storing snapshot: %w", err)
	}

	s.logger.Info("backup stored", "journal", journalID, "version", version, "bytes", len(plain))
	return version, nil
}

// RestoreBackup replaces the journal with the latest archived snapshot.
// Returns ErrNoSnapshot when the archive has nothing for journalID.
func (s *JournalService) RestoreBackup(archive Archive, dec DecryptionContext, journalID string) (int64, error) {
	version, err := archive.SnapshotVersion(journalID)
	if err != nil {
		return 0, fmt.Errorf("reading archive version: %w", err)
	}
	if version == 0 {
		return 0, ErrNoSnapshot
	}

	var sealed bytes.Buffer
	if err := archive.GetSnapshot(journalID, &sealed); err != nil {
		return 0, fmt.Errorf("fetching snapshot: %w", err)
	}

	var plain bytes.Buffer
	if err := dec.Decrypt(&sealed, &plain); err != nil {
		return 0, fmt.Errorf("decrypting snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(plain.Bytes(), &snap); err != nil {
		return 0, fmt.Errorf("decoding snapshot: %w", err)
	}

	s.Restore(&snap)
	s.logger.Info("backup restored", "journal", journalID, "version", version)
	return version, nil
}
