package archive

import (
	"testing"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/amazon"
	"bitbucket.org/yellowmessenger/audiolab/utils/azure"
)

func TestNew(t *testing.T) {
	u, err := New(configmanager.ArchiveConf{})
	if err != nil || u != nil {
		t.Errorf("disabled: got %v, %v", u, err)
	}

	u, err = New(configmanager.ArchiveConf{Provider: "Azure", Azure: configmanager.AzureArchiveConf{AccountName: "a", AccountKey: "a2V5", ContainerName: "c"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := u.(*azure.BlobUploader); !ok {
		t.Errorf("got %T, want *azure.BlobUploader", u)
	}

	u, err = New(configmanager.ArchiveConf{Provider: "s3", S3: configmanager.S3ArchiveConf{Region: "eu-west-1", Bucket: "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := u.(*amazon.S3Uploader); !ok {
		t.Errorf("got %T, want *amazon.S3Uploader", u)
	}

	if _, err := New(configmanager.ArchiveConf{Provider: "ftp"}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}
