// Package azure archives processed files to an Azure blob container.
package azure

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/Azure/azure-storage-blob-go/azblob"
)

// BlobUploader uploads with the storage account key
type BlobUploader struct {
	conf       configmanager.AzureArchiveConf
	credential *azblob.SharedKeyCredential
}

// NewBlobUploader validates the account settings
func NewBlobUploader(conf configmanager.AzureArchiveConf) (*BlobUploader, error) {
	if len(conf.AccountName) == 0 || len(conf.AccountKey) == 0 || len(conf.ContainerName) == 0 {
		return nil, errors.New("azure archive needs account_name, account_key and container_name")
	}
	credential, err := azblob.NewSharedKeyCredential(conf.AccountName, conf.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}
	return &BlobUploader{conf: conf, credential: credential}, nil
}

// BlobName is <prefix>/<date>/<base name of filePath>
func BlobName(prefix, filePath string, now time.Time) string {
	return path.Join(prefix, now.Format("2006-01-02"), filepath.Base(filePath))
}

// Upload copies filePath to the container and returns the blob URL
func (b *BlobUploader) Upload(ctx context.Context, requestID, filePath string) (string, error) {
	u, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s",
		b.conf.AccountName, b.conf.ContainerName, BlobName(b.conf.Prefix, filePath, time.Now())))
	if err != nil {
		ymlogger.LogErrorf(requestID, "Failed to parse the URL. Error: [%#v]", err)
		return "", err
	}
	blockBlobURL := azblob.NewBlockBlobURL(*u, azblob.NewPipeline(b.credential, azblob.PipelineOptions{}))

	dat, err := ioutil.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	o := azblob.UploadToBlockBlobOptions{
		BlobHTTPHeaders: azblob.BlobHTTPHeaders{
			ContentType: "audio/wav",
		},
	}
	if _, err = azblob.UploadBufferToBlockBlob(ctx, dat, blockBlobURL, o); err != nil {
		ymlogger.LogErrorf(requestID, "Failed to upload the file to blob storage. Error: [%#v]", err)
		return "", err
	}
	ymlogger.LogInfof(requestID, "Uploaded file to blob: [%s]", blockBlobURL.String())
	return blockBlobURL.String(), nil
}
