package mailcore

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"

	"github.com/infodancer/mailcore/errors"
)

const (
	// EncryptionAlgorithm is the algorithm identifier for sealed archives.
	EncryptionAlgorithm = "x25519-xsalsa20-poly1305"

	// PublicKeySize is the size of an X25519 public key.
	PublicKeySize = 32

	// NonceSize is the size of the NaCl box nonce.
	NonceSize = 24
)

// EncryptingArchiver wraps an Archiver to seal message content before it is
// written. Keys are looked up per mailbox through the KeyProvider; mailboxes
// without a key are archived in plaintext.
type EncryptingArchiver struct {
	// underlying is the wrapped archiver.
	underlying Archiver

	// keyProvider provides mailbox public keys.
	keyProvider KeyProvider
}

// NewEncryptingArchiver creates a new encrypting archiver.
// underlying is the archiver to wrap.
// keyProvider is used to look up mailbox public keys.
func NewEncryptingArchiver(underlying Archiver, keyProvider KeyProvider) *EncryptingArchiver {
	return &EncryptingArchiver{
		underlying:  underlying,
		keyProvider: keyProvider,
	}
}

// Archive seals the rendered message for the destination mailbox and hands
// the ciphertext to the wrapped archiver. Mailboxes without a key pass
// through unchanged.
func (e *EncryptingArchiver) Archive(ctx context.Context, item ArchiveItem, message io.Reader) error {
	data, err := io.ReadAll(message)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	pubKey, err := e.keyProvider.PublicKey(ctx, item.Mailbox)
	if err == errors.ErrKeyNotFound {
		item.Encryption = nil
		return e.underlying.Archive(ctx, item, bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("public key for %s: %w", item.Mailbox, err)
	}

	sealed, err := sealMessage(data, pubKey)
	if err != nil {
		return fmt.Errorf("encrypt for %s: %w", item.Mailbox, err)
	}

	item.Encryption = &EncryptionInfo{
		Algorithm: EncryptionAlgorithm,
		Encrypted: true,
	}
	return e.underlying.Archive(ctx, item, bytes.NewReader(sealed))
}

// sealMessage encrypts message data using NaCl box with an ephemeral key pair.
// Returns: ephemeral_public_key (32B) || nonce (24B) || ciphertext
func sealMessage(message []byte, mailboxPubKey []byte) ([]byte, error) {
	if len(mailboxPubKey) != PublicKeySize {
		return nil, fmt.Errorf("invalid mailbox public key size: %d", len(mailboxPubKey))
	}

	// Generate ephemeral key pair
	ephemeralPub, ephemeralPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}

	// Generate nonce
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	var mailboxKey [PublicKeySize]byte
	copy(mailboxKey[:], mailboxPubKey)

	ciphertext := box.Seal(nil, message, &nonce, &mailboxKey, ephemeralPriv)

	// Build output: ephemeral_pub (32B) || nonce (24B) || ciphertext
	result := make([]byte, PublicKeySize+NonceSize+len(ciphertext))
	copy(result[:PublicKeySize], ephemeralPub[:])
	copy(result[PublicKeySize:PublicKeySize+NonceSize], nonce[:])
	copy(result[PublicKeySize+NonceSize:], ciphertext)

	return result, nil
}

// DecryptMessage decrypts sealed archive content using the mailbox private key.
// Input format: ephemeral_public_key (32B) || nonce (24B) || ciphertext
func DecryptMessage(sealed []byte, privateKey []byte) ([]byte, error) {
	if len(privateKey) != PublicKeySize {
		return nil, fmt.Errorf("invalid private key size: %d", len(privateKey))
	}

	minSize := PublicKeySize + NonceSize + box.Overhead
	if len(sealed) < minSize {
		return nil, fmt.Errorf("sealed data too short: %d < %d", len(sealed), minSize)
	}

	var ephemeralPub [PublicKeySize]byte
	copy(ephemeralPub[:], sealed[:PublicKeySize])

	var nonce [NonceSize]byte
	copy(nonce[:], sealed[PublicKeySize:PublicKeySize+NonceSize])

	ciphertext := sealed[PublicKeySize+NonceSize:]

	var privKey [PublicKeySize]byte
	copy(privKey[:], privateKey)

	plaintext, ok := box.Open(nil, ciphertext, &nonce, &ephemeralPub, &privKey)
	if !ok {
		return nil, errors.ErrDecryptFailed
	}
	return plaintext, nil
}

// Compile-time interface verification.
var _ Archiver = (*EncryptingArchiver)(nil)
