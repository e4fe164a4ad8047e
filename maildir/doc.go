// Package maildir provides a Maildir-format mailbox archiver.
//
// Maildir is a widely-used format for storing email messages where each
// message is kept as a separate file. The archiver writes one maildir per
// user under a base path, with non-INBOX folders as dot-prefixed subfolders
// in the Maildir++ layout:
//
//	basePath/
//	└── user@example.com/
//	    ├── new/         # Archived messages not yet listed
//	    ├── cur/         # Messages that have been listed
//	    ├── tmp/         # Temporary files during archiving
//	    └── .Work/       # The user's "Work" folder
//	        ├── new/
//	        ├── cur/
//	        └── tmp/
//
// The package registers itself with the mailcore archiver registry under the
// name "maildir". Import it with a blank identifier to enable maildir
// support:
//
//	import _ "github.com/infodancer/mailcore/maildir"
//
// Then open a maildir archiver:
//
//	a, err := mailcore.OpenArchiver(mailcore.ArchiveConfig{
//	    Type:     "maildir",
//	    BasePath: "/var/mail",
//	})
package maildir
