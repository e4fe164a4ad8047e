package maildir

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-maildir"
	"github.com/infodancer/mailcore"
	"github.com/infodancer/mailcore/errors"
)

// Store implements mailcore.Archiver using the Maildir format.
// It uses emersion/go-maildir for low-level maildir operations.
// Each mailbox gets its own maildir under the base path; folders other than
// INBOX are stored as dot-prefixed subfolders.
type Store struct {
	basePath string
}

// NewStore creates a maildir store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// folderPath returns the filesystem path for a mailbox folder.
// Returns an error if the resulting path would escape the base directory.
func (s *Store) folderPath(mailbox, folder string) (string, error) {
	candidate := filepath.Join(s.basePath, mailbox)
	if folder != "" && !strings.EqualFold(folder, mailcore.FolderInbox) {
		candidate = filepath.Join(candidate, "."+folder)
	}

	// Clean both paths to normalize them
	cleanBase := filepath.Clean(s.basePath)
	cleanCandidate := filepath.Clean(candidate)

	// Verify the candidate is under the base path
	// Add separator to prevent prefix matching (e.g., /base-other matching /base)
	if !strings.HasPrefix(cleanCandidate+string(filepath.Separator), cleanBase+string(filepath.Separator)) {
		return "", errors.ErrPathTraversal
	}

	return cleanCandidate, nil
}

// ensureMaildir ensures the maildir for a mailbox folder exists, creating it
// if necessary.
func (s *Store) ensureMaildir(mailbox, folder string) (maildir.Dir, error) {
	path, err := s.folderPath(mailbox, folder)
	if err != nil {
		return "", err
	}
	dir := maildir.Dir(path)

	// Check if maildir exists by checking for cur/ directory
	curPath := filepath.Join(path, "cur")
	if _, err := os.Stat(curPath); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0700); err != nil {
			return "", err
		}
		if err := dir.Init(); err != nil {
			return "", err
		}
	}

	return dir, nil
}

// Archive implements mailcore.Archiver. The rendered message is written
// through the safe maildir delivery process (tmp/, then new/). Flags are
// runtime state of the exchange and are not persisted in the archive.
func (s *Store) Archive(ctx context.Context, item mailcore.ArchiveItem, message io.Reader) error {
	dir, err := s.ensureMaildir(item.Mailbox, item.Folder)
	if err != nil {
		return err
	}

	// NewDelivery takes the directory path as a string
	delivery, err := maildir.NewDelivery(string(dir))
	if err != nil {
		return err
	}

	if _, err := io.Copy(delivery, message); err != nil {
		_ = delivery.Abort()
		return err
	}
	return delivery.Close()
}

// MessageInfo contains metadata about an archived message.
type MessageInfo struct {
	// Key is the unique identifier for the message within the maildir.
	Key string

	// Size is the message size in bytes.
	Size int64

	// Flags contains the message's flags as mailcore flag names.
	Flags []string

	// Recent indicates the message had not been listed before.
	Recent bool
}

// List returns metadata for the archived messages in a mailbox folder.
// Listing moves messages from new/ to cur/; messages seen for the first
// time are reported as recent.
func (s *Store) List(ctx context.Context, mailbox, folder string) ([]MessageInfo, error) {
	path, err := s.folderPath(mailbox, folder)
	if err != nil {
		return nil, err
	}

	// Check if maildir exists
	curPath := filepath.Join(path, "cur")
	if _, err := os.Stat(curPath); os.IsNotExist(err) {
		return nil, errors.ErrMailboxNotFound
	}

	dir := maildir.Dir(path)

	// Track which messages were in new/ (recent messages)
	recentKeys := make(map[string]bool)

	// Unseen() moves messages from new/ to cur/ and returns them
	unseenMsgs, err := dir.Unseen()
	if err != nil {
		return nil, err
	}
	for _, msg := range unseenMsgs {
		recentKeys[msg.Key()] = true
	}

	// Now get all messages (which are all in cur/ after Unseen())
	allMsgs, err := dir.Messages()
	if err != nil {
		return nil, err
	}

	var messages []MessageInfo
	for _, msg := range allMsgs {
		key := msg.Key()

		fi, err := os.Stat(msg.Filename())
		if err != nil {
			continue // Skip on error
		}

		messages = append(messages, MessageInfo{
			Key:    key,
			Size:   fi.Size(),
			Flags:  convertFlags(msg.Flags()),
			Recent: recentKeys[key],
		})
	}

	return messages, nil
}

// Read returns the content of an archived message.
// The caller is responsible for closing the returned ReadCloser.
func (s *Store) Read(ctx context.Context, mailbox, folder, key string) (io.ReadCloser, error) {
	path, err := s.folderPath(mailbox, folder)
	if err != nil {
		return nil, err
	}

	// Check if maildir exists
	curPath := filepath.Join(path, "cur")
	if _, err := os.Stat(curPath); os.IsNotExist(err) {
		return nil, errors.ErrMailboxNotFound
	}

	dir := maildir.Dir(path)
	msg, err := dir.MessageByKey(key)
	if err != nil {
		return nil, err
	}
	return msg.Open()
}

// convertFlags converts go-maildir flags to mailcore flag names.
func convertFlags(flags []maildir.Flag) []string {
	var result []string
	for _, f := range flags {
		switch f {
		case maildir.FlagSeen:
			result = append(result, mailcore.FlagSeen)
		case maildir.FlagReplied:
			result = append(result, mailcore.FlagAnswered)
		case maildir.FlagFlagged:
			result = append(result, mailcore.FlagFlagged)
		case maildir.FlagDraft:
			result = append(result, mailcore.FlagDraft)
		case maildir.FlagTrashed:
			result = append(result, mailcore.FlagTrashed)
		}
	}
	return result
}

// Compile-time interface verification.
var _ mailcore.Archiver = (*Store)(nil)
