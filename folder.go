package mailcore

import (
	"strings"
	"sync"
)

// Folder is a named, ordered collection of messages belonging to one user.
// Messages appear in arrival order. All methods are safe for concurrent use;
// every mutation is atomic with respect to other operations on the folder.
type Folder struct {
	name string

	mu       sync.Mutex
	messages []*Message
}

// NewFolder creates an empty folder with the given display name.
func NewFolder(name string) *Folder {
	return &Folder{name: name}
}

// Name returns the folder's display name in its original case.
func (f *Folder) Name() string { return f.name }

// Len returns the number of messages in the folder.
func (f *Folder) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// Add appends a message to the end of the folder. It does not check for
// duplicates; callers must not insert the same message id twice.
func (f *Folder) Add(m *Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)
}

// Remove deletes the first message whose id matches and reports whether a
// removal occurred.
func (f *Folder) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, m := range f.messages {
		if m.ID() == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a snapshot of the folder contents in insertion order.
func (f *Folder) List() []*Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Message(nil), f.messages...)
}

// FindBySubject returns the messages whose subject contains the given
// substring, ignoring case. An empty substring matches every message.
func (f *Folder) FindBySubject(substr string) []*Message {
	key := strings.ToLower(substr)

	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []*Message
	for _, m := range f.messages {
		if strings.Contains(strings.ToLower(m.Subject()), key) {
			matches = append(matches, m)
		}
	}
	return matches
}
