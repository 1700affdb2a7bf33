// Package amazon archives processed files to an S3 bucket.
package amazon

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Uploader uses the credentials of the default AWS chain
type S3Uploader struct {
	conf     configmanager.S3ArchiveConf
	uploader *s3manager.Uploader
}

// NewS3Uploader creates the session. Credentials are resolved lazily on upload.
func NewS3Uploader(conf configmanager.S3ArchiveConf) (*S3Uploader, error) {
	if len(conf.Bucket) == 0 {
		return nil, errors.New("s3 archive needs a bucket")
	}
	opts := session.Options{SharedConfigState: session.SharedConfigEnable}
	if len(conf.Region) > 0 {
		opts.Config.Region = aws.String(conf.Region)
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &S3Uploader{conf: conf, uploader: s3manager.NewUploader(sess)}, nil
}

// ObjectKey is <prefix>/<base name of filePath>
func ObjectKey(prefix, filePath string) string {
	return path.Join(prefix, filepath.Base(filePath))
}

// Upload copies filePath to the bucket and returns the object location
func (s *S3Uploader) Upload(ctx context.Context, requestID, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.conf.Bucket),
		Key:         aws.String(ObjectKey(s.conf.Prefix, filePath)),
		Body:        f,
		ContentType: aws.String("audio/wav"),
	})
	if err != nil {
		ymlogger.LogErrorf(requestID, "Failed to upload the file to S3. Error: [%#v]", err)
		return "", err
	}
	ymlogger.LogInfof(requestID, "Uploaded file to S3: [%s]", result.Location)
	return result.Location, nil
}
