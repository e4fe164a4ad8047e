package mailcore

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known message flags. Flags are free-form strings; these constants
// name the labels the maildir archiver knows how to translate.
const (
	FlagSeen     = "seen"
	FlagAnswered = "answered"
	FlagFlagged  = "flagged"
	FlagDraft    = "draft"
	FlagTrashed  = "trashed"
)

// Message is a single piece of mail. The envelope (id, sender, recipients,
// subject, body, creation time) is fixed at construction; only the flag set
// changes afterward. All methods are safe for concurrent use.
type Message struct {
	id         string
	sender     string
	recipients []string
	subject    string
	body       string
	createdAt  time.Time

	flagsMu sync.Mutex
	flags   map[string]struct{}
}

// NewMessage creates a message with a fresh unique id, the current UTC time
// and an empty flag set. The recipient slice is copied, so later changes to
// the caller's slice do not affect the message. An empty recipient list is
// allowed, but such a message cannot be delivered.
func NewMessage(sender string, recipients []string, subject, body string) *Message {
	return &Message{
		id:         uuid.NewString(),
		sender:     sender,
		recipients: append([]string(nil), recipients...),
		subject:    subject,
		body:       body,
		createdAt:  time.Now().UTC(),
		flags:      make(map[string]struct{}),
	}
}

// ID returns the unique message identifier.
func (m *Message) ID() string { return m.id }

// Sender returns the sender address.
func (m *Message) Sender() string { return m.sender }

// Recipients returns a copy of the recipient list in send order.
func (m *Message) Recipients() []string {
	return append([]string(nil), m.recipients...)
}

// Subject returns the message subject.
func (m *Message) Subject() string { return m.subject }

// Body returns the message body.
func (m *Message) Body() string { return m.body }

// CreatedAt returns the message creation time.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// Mark adds a flag to the message. Marking a flag that is already present
// is a no-op.
func (m *Message) Mark(flag string) {
	m.flagsMu.Lock()
	defer m.flagsMu.Unlock()
	m.flags[flag] = struct{}{}
}

// Unmark removes a flag from the message. Removing an absent flag is a no-op.
func (m *Message) Unmark(flag string) {
	m.flagsMu.Lock()
	defer m.flagsMu.Unlock()
	delete(m.flags, flag)
}

// HasFlag reports whether the flag is set on the message.
func (m *Message) HasFlag(flag string) bool {
	m.flagsMu.Lock()
	defer m.flagsMu.Unlock()
	_, ok := m.flags[flag]
	return ok
}

// Flags returns a sorted copy of the message's flags.
func (m *Message) Flags() []string {
	m.flagsMu.Lock()
	defer m.flagsMu.Unlock()

	flags := make([]string, 0, len(m.flags))
	for f := range m.flags {
		flags = append(flags, f)
	}
	sort.Strings(flags)
	return flags
}

// Clone returns an independent copy of the message sharing the same id.
// Each folder holds its own clone, so marking a flag on one mailbox view
// does not leak into another.
func (m *Message) Clone() *Message {
	m.flagsMu.Lock()
	defer m.flagsMu.Unlock()

	c := &Message{
		id:         m.id,
		sender:     m.sender,
		recipients: append([]string(nil), m.recipients...),
		subject:    m.subject,
		body:       m.body,
		createdAt:  m.createdAt,
		flags:      make(map[string]struct{}, len(m.flags)),
	}
	for f := range m.flags {
		c.flags[f] = struct{}{}
	}
	return c
}

// WriteTo renders the message as RFC 5322-style text, a small header block
// followed by the body. It implements io.WriterTo for archivers.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", m.id)
	fmt.Fprintf(&b, "Date: %s\r\n", m.createdAt.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "From: %s\r\n", m.sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.subject)
	b.WriteString("\r\n")
	b.WriteString(m.body)

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Compile-time interface verification.
var _ io.WriterTo = (*Message)(nil)
