// Package download fetches sample audio files over HTTP.
package download

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

// Sample is a remote file and the local name it is saved under
type Sample struct {
	URL      string
	FileName string
}

// DefaultSamples are tried by the CLI download command
var DefaultSamples = []Sample{
	{URL: "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav", FileName: "bell.wav"},
	{URL: "https://www.soundjay.com/misc/sounds/phone-ring-1.wav", FileName: "phone.wav"},
}

var client *http.Client

// InitDownloadClient initializes the HTTP client for downloads
func InitDownloadClient() {
	client = &http.Client{
		Transport: &http.Transport{
			Dial:                (&net.Dialer{Timeout: 3 * time.Second}).Dial,
			TLSHandshakeTimeout: 3 * time.Second,
		},
		Timeout: time.Duration(60 * time.Second),
	}
}

// Fetch streams url into dst. A non-2xx status is an error and leaves no file behind.
func Fetch(ctx context.Context, url, dst string) (int64, error) {
	if client == nil {
		InitDownloadClient()
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req = req.WithContext(ctx)

	ymlogger.LogDebugf("Download", "Fetching [%s] into [%s]", url, dst)
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return 0, err
	}
	ymlogger.LogInfof("Download", "Downloaded [%s] (%d bytes)", dst, n)
	return n, nil
}
