package mailcore

import "context"

// KeyProvider retrieves public keys for archive encryption.
// Used by the EncryptingArchiver to seal messages per mailbox.
type KeyProvider interface {
	// PublicKey returns the encryption key for a mailbox.
	// Returns errors.ErrKeyNotFound if the mailbox has no key.
	PublicKey(ctx context.Context, mailbox string) ([]byte, error)
}

// EncryptionInfo contains metadata about message encryption.
type EncryptionInfo struct {
	// Algorithm identifies the encryption algorithm used.
	// Example: "x25519-xsalsa20-poly1305" (NaCl box)
	Algorithm string

	// Encrypted indicates whether the message content is encrypted.
	Encrypted bool
}
