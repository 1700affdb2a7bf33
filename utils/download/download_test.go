package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.wav" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("RIFF----WAVE"))
	}))
	defer srv.Close()
	dir := t.TempDir()

	t.Run("OK", func(t *testing.T) {
		dst := filepath.Join(dir, "bell.wav")
		n, err := Fetch(context.Background(), srv.URL+"/bell.wav", dst)
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if n != 12 || string(b) != "RIFF----WAVE" {
			t.Errorf("got %d bytes %q", n, b)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		dst := filepath.Join(dir, "missing.wav")
		if _, err := Fetch(context.Background(), srv.URL+"/missing.wav", dst); err == nil {
			t.Fatal("expected an error for 404")
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Errorf("file should not exist, stat err = %v", err)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Fetch(ctx, srv.URL+"/bell.wav", filepath.Join(dir, "c.wav")); err == nil {
			t.Fatal("expected an error for a cancelled context")
		}
	})
}
