package mailcore

import (
	"sort"
	"strings"
	"sync"

	"github.com/infodancer/mailcore/errors"
)

// Default folders present on every user.
const (
	FolderInbox = "INBOX"
	FolderSent  = "SENT"
	FolderTrash = "TRASH"
)

// User owns a set of named folders and exchanges mail through a Server.
// The address is normalized to lowercase at construction and is the user's
// immutable identity. Folder names are case-insensitive; the INBOX, SENT
// and TRASH folders always exist.
type User struct {
	address     string
	displayName string

	foldersMu sync.RWMutex
	folders   map[string]*Folder // keyed by uppercase folder name
}

// NewUser creates a user with the three default folders.
// Users are normally constructed through Server.Register.
func NewUser(address, displayName string) *User {
	u := &User{
		address:     NormalizeAddress(address),
		displayName: displayName,
		folders:     make(map[string]*Folder),
	}
	for _, name := range []string{FolderInbox, FolderSent, FolderTrash} {
		u.folders[name] = NewFolder(name)
	}
	return u
}

// Address returns the user's normalized address.
func (u *User) Address() string { return u.address }

// DisplayName returns the user's display name.
func (u *User) DisplayName() string { return u.displayName }

// folderKey returns the case-insensitive lookup key for a folder name.
func folderKey(name string) string {
	return strings.ToUpper(name)
}

// CreateFolder creates an empty folder. Names are matched case-insensitively
// against existing folders, including the defaults; the original case is
// kept as the display name. Returns errors.ErrFolderExists on a collision.
func (u *User) CreateFolder(name string) (*Folder, error) {
	key := folderKey(name)

	u.foldersMu.Lock()
	defer u.foldersMu.Unlock()

	if _, exists := u.folders[key]; exists {
		return nil, errors.ErrFolderExists
	}
	f := NewFolder(name)
	u.folders[key] = f
	return f, nil
}

// Folders returns the sorted normalized names of the user's folders.
func (u *User) Folders() []string {
	u.foldersMu.RLock()
	defer u.foldersMu.RUnlock()

	names := make([]string, 0, len(u.folders))
	for key := range u.folders {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Folder looks up a folder by name, ignoring case.
// Returns errors.ErrFolderNotFound if no such folder exists.
func (u *User) Folder(name string) (*Folder, error) {
	u.foldersMu.RLock()
	defer u.foldersMu.RUnlock()

	f, ok := u.folders[folderKey(name)]
	if !ok {
		return nil, errors.ErrFolderNotFound
	}
	return f, nil
}

// Send constructs a message from this user and routes it through the server.
// When at least one recipient accepts, the message is appended to the SENT
// folder and returned. When no recipient accepts, including when the
// recipient list is empty, Send returns errors.ErrDeliveryFailed and SENT
// is left untouched.
func (u *User) Send(server *Server, recipients []string, subject, body string) (*Message, error) {
	m := NewMessage(u.address, recipients, subject, body)
	if !server.Route(m) {
		return nil, errors.ErrDeliveryFailed
	}

	sent, err := u.Folder(FolderSent)
	if err != nil {
		return nil, err
	}
	sent.Add(m)
	return m, nil
}

// Receive appends a message to the user's INBOX. It is invoked by the
// server during routing and never fails.
func (u *User) Receive(m *Message) {
	u.deliver("", m)
}

// deliver places a message in the folder named by the subaddress extension
// when such a folder exists, otherwise in INBOX.
func (u *User) deliver(extension string, m *Message) {
	target := FolderInbox
	if extension != "" {
		if _, err := u.Folder(extension); err == nil {
			target = extension
		}
	}

	f, err := u.Folder(target)
	if err != nil {
		// Default folders always exist.
		return
	}
	f.Add(m)
}
