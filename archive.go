package mailcore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/infodancer/mailcore/errors"
)

// Archiver writes rendered messages to external storage. Implementations
// are collaborators outside the exchange core: they consume the public API
// only and make no durability promises about the in-memory state itself.
type Archiver interface {
	// Archive stores one rendered message. item identifies where the
	// message belongs; message is the rendered content.
	Archive(ctx context.Context, item ArchiveItem, message io.Reader) error
}

// ArchiveItem identifies a message being archived.
type ArchiveItem struct {
	// Mailbox is the owning user's address.
	Mailbox string

	// Folder is the display name of the folder holding the message.
	Folder string

	// MessageID is the message's unique id.
	MessageID string

	// Flags contains the message's flags at archive time.
	Flags []string

	// Encryption describes content encryption, nil for plaintext.
	Encryption *EncryptionInfo
}

// ArchiverFactory creates an Archiver from configuration.
type ArchiverFactory func(config ArchiveConfig) (Archiver, error)

// ArchiveConfig contains settings for opening an archiver.
type ArchiveConfig struct {
	// Type is the archiver type name (e.g., "maildir").
	Type string

	// BasePath is the root directory for file-based archivers.
	BasePath string

	// Options contains implementation-specific settings.
	Options map[string]string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ArchiverFactory)
)

// RegisterArchiver adds an archiver factory to the registry.
// It panics if called with an empty name or nil factory,
// or if the name is already registered.
func RegisterArchiver(name string, factory ArchiverFactory) {
	if name == "" {
		panic("mailcore: RegisterArchiver called with empty name")
	}
	if factory == nil {
		panic("mailcore: RegisterArchiver called with nil factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic("mailcore: RegisterArchiver called twice for " + name)
	}
	registry[name] = factory
}

// OpenArchiver creates an Archiver using the registered factory for the
// config type.
func OpenArchiver(config ArchiveConfig) (Archiver, error) {
	registryMu.RLock()
	factory, ok := registry[config.Type]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.ErrArchiverNotRegistered
	}
	return factory(config)
}

// RegisteredArchivers returns a sorted list of registered archiver type names.
func RegisteredArchivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// ArchiveUser writes every message in every folder of a user through the
// archiver. Messages are rendered with Message.WriteTo. Folder contents are
// read as snapshots, so deliveries arriving during the walk may be missed.
func ArchiveUser(ctx context.Context, a Archiver, u *User) error {
	for _, name := range u.Folders() {
		folder, err := u.Folder(name)
		if err != nil {
			continue
		}

		for _, m := range folder.List() {
			var buf bytes.Buffer
			if _, err := m.WriteTo(&buf); err != nil {
				return err
			}

			item := ArchiveItem{
				Mailbox:   u.Address(),
				Folder:    folder.Name(),
				MessageID: m.ID(),
				Flags:     m.Flags(),
			}
			if err := a.Archive(ctx, item, &buf); err != nil {
				return fmt.Errorf("archive %s/%s: %w", u.Address(), folder.Name(), err)
			}
		}
	}
	return nil
}
