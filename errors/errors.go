// Package errors provides centralized error definitions for mailcore.
package errors

import "errors"

// Registry errors.
var (
	// ErrUserExists indicates the address is already registered.
	ErrUserExists = errors.New("user already exists")
)

// Folder errors.
var (
	// ErrFolderExists indicates a folder with the same name already exists.
	ErrFolderExists = errors.New("folder already exists")

	// ErrFolderNotFound indicates the requested folder does not exist.
	ErrFolderNotFound = errors.New("folder not found")
)

// Delivery errors.
var (
	// ErrDeliveryFailed indicates no recipient accepted the message.
	ErrDeliveryFailed = errors.New("delivery failed")
)

// Archive errors.
var (
	// ErrArchiverNotRegistered indicates the requested archiver type is not registered.
	ErrArchiverNotRegistered = errors.New("archiver type not registered")

	// ErrArchiveConfigInvalid indicates the archive configuration is invalid.
	ErrArchiveConfigInvalid = errors.New("invalid archive configuration")

	// ErrMailboxNotFound indicates the archived mailbox does not exist.
	ErrMailboxNotFound = errors.New("mailbox not found")

	// ErrPathTraversal indicates a mailbox path escapes the archive base directory.
	ErrPathTraversal = errors.New("path escapes base directory")
)

// Encryption errors.
var (
	// ErrKeyNotFound indicates the mailbox has no encryption key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDecryptFailed indicates the sealed content could not be opened.
	ErrDecryptFailed = errors.New("decryption failed")
)
