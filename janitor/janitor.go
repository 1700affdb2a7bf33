// Package janitor removes uploads and processed files past their retention.
package janitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

// Sweep deletes the regular files in dir last modified before now-retention
func Sweep(dir string, retention time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-retention)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			ymlogger.LogErrorf("Janitor", "Failed to remove [%s]. Error: [%#v]", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// StartSweeper sweeps dir every interval until ctx is done. A zero retention
// disables it.
func StartSweeper(ctx context.Context, dir string, retention, interval time.Duration) {
	if retention <= 0 {
		ymlogger.LogInfo("Janitor", "Retention is disabled, uploads are kept")
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := Sweep(dir, retention, now)
			if err != nil {
				ymlogger.LogErrorf("Janitor", "Error while sweeping [%s]. Error: [%#v]", dir, err)
				continue
			}
			if removed > 0 {
				ymlogger.LogInfof("Janitor", "Removed %d expired files from [%s]", removed, dir)
			}
		}
	}
}
