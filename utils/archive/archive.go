// Package archive selects where processed files are copied after an effect run.
package archive

import (
	"context"
	"fmt"
	"strings"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/amazon"
	"bitbucket.org/yellowmessenger/audiolab/utils/azure"
)

// Providers
const (
	None  = ""
	Azure = "azure"
	S3    = "s3"
)

// Uploader copies a local file to remote storage and returns its URL
type Uploader interface {
	Upload(ctx context.Context, requestID, filePath string) (string, error)
}

// New returns the configured uploader, or nil when archiving is disabled
func New(conf configmanager.ArchiveConf) (Uploader, error) {
	switch strings.ToLower(conf.Provider) {
	case None:
		return nil, nil
	case Azure:
		u, err := azure.NewBlobUploader(conf.Azure)
		if err != nil {
			return nil, err
		}
		return u, nil
	case S3:
		u, err := amazon.NewS3Uploader(conf.S3)
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unknown archive provider %q", conf.Provider)
	}
}
