package testutil

import (
	"vj-go/internal/encryption"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() *encryption.TestEncryptor {
	return encryption.NewTestEncryptor()
}
