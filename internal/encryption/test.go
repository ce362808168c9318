package encryption

import (
	"bytes"
	"fmt"
	"io"

	"vj-go/internal/journal"
)

// testHeader marks output of TestEncryptor so sealed snapshots never equal
// their plaintext.
var testHeader = []byte("VJBAK\x00\x00\x01")

// TestEncryptor is a deterministic encryptor for tests. It prepends a fixed
// header on Encrypt and checks and strips it on Decrypt. Unlock accepts any
// passphrase except the one set with RejectPassphrase.
type TestEncryptor struct {
	setupCalled bool
	reject      string
}

var _ journal.Encryptor = (*TestEncryptor)(nil)

// NewTestEncryptor creates a new TestEncryptor.
func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

// RejectPassphrase makes Unlock fail for p.
func (e *TestEncryptor) RejectPassphrase(p string) {
	e.reject = p
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testHeader); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (journal.DecryptionContext, error) {
	if e.reject != "" && passphrase == e.reject {
		return nil, fmt.Errorf("decrypting private key: incorrect passphrase")
	}
	return &TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestDecryptionContext strips the header added by TestEncryptor.
type TestDecryptionContext struct{}

var _ journal.DecryptionContext = (*TestDecryptionContext)(nil)

func (c *TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	header := make([]byte, len(testHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !bytes.Equal(header, testHeader) {
		return fmt.Errorf("invalid test encryption header")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
