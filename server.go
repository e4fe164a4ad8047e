package mailcore

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/infodancer/mailcore/errors"
)

// Server is the central exchange. It holds the authoritative user registry
// and routes messages between registered users. A single Server instance is
// shared by all callers and is safe for concurrent use.
type Server struct {
	usersMu sync.RWMutex
	users   map[string]*User // keyed by normalized address
}

// NewServer creates a server with an empty user registry.
func NewServer() *Server {
	return &Server{users: make(map[string]*User)}
}

// Register creates and stores a user for the given address. The address is
// normalized to lowercase; registering an address that differs only in case
// from an existing one fails with errors.ErrUserExists.
func (s *Server) Register(address, displayName string) (*User, error) {
	key := NormalizeAddress(address)

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.users[key]; exists {
		return nil, errors.ErrUserExists
	}
	u := NewUser(address, displayName)
	s.users[key] = u
	return u, nil
}

// Lookup finds a registered user by address, ignoring case. The second
// return value reports whether the user exists; probing for an absent user
// is not an error.
func (s *Server) Lookup(address string) (*User, bool) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[NormalizeAddress(address)]
	return u, ok
}

// Route delivers a message to each recipient in order. Subaddress
// extensions (user+folder@example.com) are stripped for the registry
// lookup; when the recipient has a folder matching the extension the
// message lands there, otherwise in INBOX. Every delivered copy is an
// independent clone, so flag changes in one mailbox do not show up in
// another. Unknown recipients are recorded as warnings and skipped.
// Route reports whether at least one recipient was delivered.
func (s *Server) Route(m *Message) bool {
	delivered := 0
	for _, addr := range m.Recipients() {
		parsed := ParseRecipient(NormalizeAddress(addr))
		u, ok := s.Lookup(parsed.Address)
		if !ok {
			log.Warn().
				Str("recipient", addr).
				Str("message_id", m.ID()).
				Msg("recipient not registered, skipping delivery")
			continue
		}
		u.deliver(parsed.Extension, m.Clone())
		delivered++
	}
	return delivered > 0
}

// Users returns the sorted addresses of all registered users.
func (s *Server) Users() []string {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	addrs := make([]string, 0, len(s.users))
	for addr := range s.users {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
