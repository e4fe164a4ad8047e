// Package mailcore implements an in-memory electronic-mail exchange.
//
// A Server holds the authoritative registry of users and routes messages
// between them. Each User owns a set of named folders (INBOX, SENT and TRASH
// are always present) and each Folder holds messages in arrival order.
// Sending constructs a Message, routes it through the server, and places
// copies in the sender's SENT folder and each recipient's INBOX:
//
//	server := mailcore.NewServer()
//	ana, _ := server.Register("ana@example.com", "Ana")
//	ben, _ := server.Register("ben@example.com", "Ben")
//
//	msg, err := ana.Send(server, []string{"ben@example.com"}, "Hola", "...")
//
// The exchange is purely in-memory and synchronous. Transport protocols,
// authentication and durable storage are left to the embedding application;
// the Archiver interface provides the seam for exporting mailbox snapshots
// to external storage such as the maildir subpackage.
//
// All types are safe for concurrent use by multiple goroutines.
package mailcore
