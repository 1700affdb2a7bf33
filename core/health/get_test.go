package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/effects"
)

func TestGet(t *testing.T) {
	conf, err := configmanager.Load("")
	if err != nil {
		t.Fatal(err)
	}
	conf.Upload.Dir = t.TempDir()
	configmanager.ConfStore = conf

	bin := t.TempDir()
	if err := os.WriteFile(filepath.Join(bin, "volume"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	resp, err := Get(context.Background(), effects.NewRunner(bin, time.Second, nil))
	if err != nil {
		t.Fatal(err)
	}
	data := resp.ResponseData.ResourceData
	if !data.UploadDir.Exists || !data.UploadDir.Writable || data.UploadDir.Files != 0 {
		t.Errorf("UploadDir = %+v", data.UploadDir)
	}
	if !data.Effects[effects.Volume] || data.Effects[effects.Pitch] {
		t.Errorf("Effects = %v", data.Effects)
	}
	if data.RateFraction != 1 {
		t.Errorf("RateFraction = %f", data.RateFraction)
	}

	conf.Upload.Dir = filepath.Join(conf.Upload.Dir, "missing")
	resp, _ = Get(context.Background(), nil)
	if resp.ResponseData.ResourceData.UploadDir.Exists {
		t.Error("missing dir reported as existing")
	}
	noRunner := resp.ResponseData.ResourceData.Effects
	if len(noRunner) != 3 || noRunner[effects.Volume] {
		t.Errorf("Effects without a runner = %v, want every effect unavailable", noRunner)
	}
}
