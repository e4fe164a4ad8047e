package mailcore

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"testing"

	"golang.org/x/crypto/nacl/box"

	"github.com/infodancer/mailcore/errors"
)

// memoryArchiver records archived items and content in memory.
type memoryArchiver struct {
	items    []ArchiveItem
	contents [][]byte
}

func (m *memoryArchiver) Archive(ctx context.Context, item ArchiveItem, message io.Reader) error {
	data, err := io.ReadAll(message)
	if err != nil {
		return err
	}
	m.items = append(m.items, item)
	m.contents = append(m.contents, data)
	return nil
}

// mapKeyProvider serves public keys from a map.
type mapKeyProvider map[string][]byte

func (p mapKeyProvider) PublicKey(ctx context.Context, mailbox string) ([]byte, error) {
	key, ok := p[mailbox]
	if !ok {
		return nil, errors.ErrKeyNotFound
	}
	return key, nil
}

func TestEncryptingArchiverSealsContent(t *testing.T) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	underlying := &memoryArchiver{}
	a := NewEncryptingArchiver(underlying, mapKeyProvider{"ana@example.com": pub[:]})

	plaintext := []byte("Subject: secret\r\n\r\nClassified.")
	item := ArchiveItem{Mailbox: "ana@example.com", Folder: FolderInbox, MessageID: "m1"}
	if err := a.Archive(context.Background(), item, bytes.NewReader(plaintext)); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if len(underlying.items) != 1 {
		t.Fatalf("archived %d items, want 1", len(underlying.items))
	}

	got := underlying.items[0]
	if got.Encryption == nil || !got.Encryption.Encrypted {
		t.Fatal("expected encryption metadata on archived item")
	}
	if got.Encryption.Algorithm != EncryptionAlgorithm {
		t.Errorf("algorithm = %q, want %q", got.Encryption.Algorithm, EncryptionAlgorithm)
	}
	if bytes.Contains(underlying.contents[0], []byte("Classified")) {
		t.Error("archived content contains plaintext")
	}

	opened, err := DecryptMessage(underlying.contents[0], priv[:])
	if err != nil {
		t.Fatalf("DecryptMessage: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("decrypted content = %q, want %q", opened, plaintext)
	}
}

func TestEncryptingArchiverPlaintextFallback(t *testing.T) {
	underlying := &memoryArchiver{}
	a := NewEncryptingArchiver(underlying, mapKeyProvider{})

	plaintext := []byte("no key for this mailbox")
	item := ArchiveItem{Mailbox: "ben@example.com", Folder: FolderInbox}
	if err := a.Archive(context.Background(), item, bytes.NewReader(plaintext)); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if underlying.items[0].Encryption != nil {
		t.Error("keyless mailbox should be archived without encryption metadata")
	}
	if !bytes.Equal(underlying.contents[0], plaintext) {
		t.Errorf("content = %q, want passthrough plaintext", underlying.contents[0])
	}
}

func TestDecryptMessageErrors(t *testing.T) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sealed, err := sealMessage([]byte("payload"), pub[:])
	if err != nil {
		t.Fatalf("sealMessage: %v", err)
	}

	t.Run("truncated data", func(t *testing.T) {
		if _, err := DecryptMessage(sealed[:10], priv[:]); err == nil {
			t.Error("expected error for truncated data")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		_, other, err := box.GenerateKey(rand.Reader)
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		if _, err := DecryptMessage(sealed, other[:]); err != errors.ErrDecryptFailed {
			t.Errorf("err = %v, want ErrDecryptFailed", err)
		}
	})

	t.Run("bad private key size", func(t *testing.T) {
		if _, err := DecryptMessage(sealed, []byte("short")); err == nil {
			t.Error("expected error for invalid key size")
		}
	})

	t.Run("bad public key size", func(t *testing.T) {
		if _, err := sealMessage([]byte("x"), []byte("short")); err == nil {
			t.Error("expected error for invalid public key size")
		}
	})
}
