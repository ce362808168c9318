package app

import "fmt"

// InitBackup generates the backup key pair, protecting the private key with
// passphrase, and checks that the archive is usable.
func (a *JournalApp) InitBackup(passphrase string) error {
	if err := a.archive.ValidateSetup(); err != nil {
		return fmt.Errorf("validating archive: %w", err)
	}
	if err := a.encryptor.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up encryption: %w", err)
	}
	a.logger.Info("backup keys created")
	return nil
}

// CreateBackup stores an encrypted copy of the journal in the archive and
// returns its version.
func (a *JournalApp) CreateBackup() (int64, error) {
	if !a.encryptor.IsConfigured() {
		return 0, fmt.Errorf("backup keys not found: run `vj backup init` first")
	}
	return a.service.Backup(a.archive, a.encryptor, a.cfg.JournalID)
}

// RestoreBackup replaces the journal with the latest backup. The restored
// journal is saved on Close like any other change.
func (a *JournalApp) RestoreBackup(passphrase string) (int64, error) {
	dec, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return 0, fmt.Errorf("unlocking backup key: %w", err)
	}
	version, err := a.service.RestoreBackup(a.archive, dec, a.cfg.JournalID)
	if err != nil {
		return 0, err
	}
	a.changed()
	return version, nil
}
