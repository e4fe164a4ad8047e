package maildir

import (
	"github.com/infodancer/mailcore"
	"github.com/infodancer/mailcore/errors"
)

func init() {
	mailcore.RegisterArchiver("maildir", func(config mailcore.ArchiveConfig) (mailcore.Archiver, error) {
		if config.BasePath == "" {
			return nil, errors.ErrArchiveConfigInvalid
		}
		return NewStore(config.BasePath), nil
	})
}
