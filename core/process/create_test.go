package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/contracts"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
	"bitbucket.org/yellowmessenger/audiolab/utils/wavfile"
)

const fileID = "0b6b8f2e-3c1f-4a52-9d43-7b0e6f1c2a9d"

type fakeUploader struct {
	paths []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, requestID, filePath string) (string, error) {
	f.paths = append(f.paths, filePath)
	if f.err != nil {
		return "", f.err
	}
	return "https://archive.example/" + filepath.Base(filePath), nil
}

func setup(t *testing.T) (uploadDir, binDir string) {
	t.Helper()
	conf, err := configmanager.Load("")
	if err != nil {
		t.Fatal(err)
	}
	uploadDir, binDir = t.TempDir(), t.TempDir()
	conf.Upload.Dir = uploadDir
	configmanager.ConfStore = conf

	tool := "#!/bin/sh\ncp \"$1\" \"$2\"\necho \"factor $3\"\n"
	for _, name := range []string{"volume", "frequency"} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(tool), 0755); err != nil {
			t.Fatal(err)
		}
	}
	fail := "#!/bin/sh\necho 'cannot shift' >&2\nexit 1\n"
	if err := os.WriteFile(filepath.Join(binDir, "pitch_shift"), []byte(fail), 0755); err != nil {
		t.Fatal(err)
	}

	samples := make([]int, 4410)
	for i := range samples {
		samples[i] = 1000
	}
	in := filepath.Join(uploadDir, fileID+"_input.wav")
	if err := wavfile.Write(in, wavfile.Format{SampleRate: 44100, BitDepth: 16, Channels: 1}, samples); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(in, old, old); err != nil {
		t.Fatal(err)
	}
	return uploadDir, binDir
}

func request(effect string, factor float64) contracts.ProcessRequest {
	id := fileID
	return contracts.ProcessRequest{FileID: &id, EffectType: &effect, Factor: &factor}
}

func TestFindUpload(t *testing.T) {
	dir, _ := setup(t)
	later := filepath.Join(dir, fileID+"_volume_2.0.wav")
	if err := os.WriteFile(later, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FindUpload(dir, fileID)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != fileID+"_input.wav" {
		t.Errorf("FindUpload = %s, want the upload", got)
	}

	if _, err := FindUpload(dir, "ffffffff-3c1f-4a52-9d43-7b0e6f1c2a9d"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}
	if _, err := FindUpload(filepath.Join(dir, "missing"), fileID); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	dir, bin := setup(t)
	up := &fakeUploader{}
	Init(effects.NewRunner(bin, time.Second, nil), up, nil)

	resp, err := Create(context.Background(), "t", request(effects.Volume, 2))
	if err != nil {
		t.Fatal(err)
	}
	data := resp.ResponseData.ResourceData
	if !data.Success || data.OutputFile != fileID+"_volume_2.0.wav" {
		t.Errorf("unexpected %+v", data)
	}
	if strings.TrimSpace(data.CommandOutput) != "factor 2.0" {
		t.Errorf("CommandOutput = %q", data.CommandOutput)
	}
	fa, ok := data.Analysis.(*contracts.FileAnalysis)
	if !ok || fa.MaxAmplitude != 1000 || fa.Duration != 0.1 {
		t.Errorf("Analysis = %#v", data.Analysis)
	}
	if data.ArchiveURL != "https://archive.example/"+data.OutputFile || len(up.paths) != 1 {
		t.Errorf("ArchiveURL = %q, uploads = %v", data.ArchiveURL, up.paths)
	}
	if _, err := os.Stat(filepath.Join(dir, data.OutputFile)); err != nil {
		t.Errorf("output missing: %v", err)
	}

	// a second run still reads the original upload
	if _, err := Create(context.Background(), "t", request(effects.Frequency, 0.5)); err != nil {
		t.Fatal(err)
	}
}

func TestCreateErrors(t *testing.T) {
	_, bin := setup(t)
	Init(effects.NewRunner(bin, time.Second, nil), &fakeUploader{err: errors.New("offline")}, nil)

	if _, err := Create(context.Background(), "t", request("reverb", 1)); !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("err = %v, want ErrInvalidEffect", err)
	}

	_, err := Create(context.Background(), "t", request(effects.Pitch, 1.5))
	var toolErr *effects.ToolError
	if !errors.As(err, &toolErr) || !strings.Contains(toolErr.Stderr, "cannot shift") {
		t.Errorf("err = %v, want *effects.ToolError", err)
	}

	other := "ffffffff-3c1f-4a52-9d43-7b0e6f1c2a9d"
	req := request(effects.Volume, 1)
	req.FileID = &other
	if _, err := Create(context.Background(), "t", req); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}

	// a failed archive leaves the result intact
	resp, err := Create(context.Background(), "t", request(effects.Volume, 1))
	if err != nil {
		t.Fatal(err)
	}
	if resp.ResponseData.ResourceData.ArchiveURL != "" {
		t.Errorf("ArchiveURL should be empty on archive failure")
	}
}
