package amazon

import (
	"testing"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
)

func TestObjectKey(t *testing.T) {
	if got := ObjectKey("", "uploads/a.wav"); got != "a.wav" {
		t.Errorf("ObjectKey = %q", got)
	}
	if got := ObjectKey("processed", "uploads/a.wav"); got != "processed/a.wav" {
		t.Errorf("ObjectKey = %q", got)
	}
}

func TestNewS3Uploader(t *testing.T) {
	if _, err := NewS3Uploader(configmanager.S3ArchiveConf{}); err == nil {
		t.Error("expected an error without a bucket")
	}
	u, err := NewS3Uploader(configmanager.S3ArchiveConf{Region: "us-east-1", Bucket: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if u.uploader == nil {
		t.Error("uploader not created")
	}
}
