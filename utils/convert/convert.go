// Package convert turns other audio formats into 16-bit little-endian WAV
// using the OS conversion utility.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

// DefaultLimit is the number of files ConvertDir converts when no limit is given
const DefaultLimit = 5

// SystemSoundsDir holds the macOS system sounds
const SystemSoundsDir = "/System/Library/Sounds"

// Converter runs Bin with Args followed by the source and destination paths
type Converter struct {
	Bin  string
	Args []string
}

// New builds a converter from the config
func New(conf configmanager.ConvertConf) *Converter {
	return &Converter{Bin: conf.Bin, Args: conf.Args}
}

// FileError is a single failed conversion
type FileError struct {
	Source string
	Err    error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// ConvertToWAV converts src into dst
func (c *Converter) ConvertToWAV(ctx context.Context, src, dst string) error {
	args := append(append([]string{}, c.Args...), src, dst)
	cmd := exec.CommandContext(ctx, c.Bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%v: %s", err, msg)
	}
	return nil
}

// ConvertDir converts the first limit .aiff files of srcDir, in name order,
// into dstDir. It returns the count converted and the failures.
func (c *Converter) ConvertDir(ctx context.Context, srcDir, dstDir string, limit int) (int, []FileError, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, nil, err
	}
	var sources []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".aiff") {
			sources = append(sources, e.Name())
		}
	}
	sort.Strings(sources)
	if len(sources) > limit {
		sources = sources[:limit]
	}

	converted := 0
	var failures []FileError
	for _, name := range sources {
		src := filepath.Join(srcDir, name)
		dst := filepath.Join(dstDir, strings.TrimSuffix(name, ".aiff")+".wav")
		if err := c.ConvertToWAV(ctx, src, dst); err != nil {
			ymlogger.LogErrorf("Convert", "Failed to convert [%s]. Error: [%v]", src, err)
			failures = append(failures, FileError{Source: src, Err: err})
			continue
		}
		ymlogger.LogInfof("Convert", "Converted [%s] to [%s]", src, dst)
		converted++
	}
	return converted, failures, nil
}
