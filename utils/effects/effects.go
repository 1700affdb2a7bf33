// Package effects runs the pre-built effect binaries on WAV files.
package effects

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"bitbucket.org/yellowmessenger/audiolab/utils/helper"
	"bitbucket.org/yellowmessenger/audiolab/utils/ratelimit"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
)

// Effect names accepted by Run
const (
	Volume    = "volume"
	Frequency = "frequency"
	Pitch     = "pitch"
)

// DefaultTimeout bounds a single tool invocation
const DefaultTimeout = 30 * time.Second

// pipeDrainDelay is how long Run waits for the output pipes after the tool is killed
const pipeDrainDelay = time.Second

var binaries = map[string]string{
	Volume:    "volume",
	Frequency: "frequency",
	Pitch:     "pitch_shift",
}

var (
	// ErrUnknownEffect is returned for an effect name with no binary
	ErrUnknownEffect = errors.New("unknown effect")
	// ErrTimeout is returned when the tool outlives the runner timeout
	ErrTimeout = errors.New("effect timed out")
)

// ToolError is a non-zero exit of an effect binary
type ToolError struct {
	Effect   string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Effect, e.ExitCode, e.Stderr)
}

// Result of a successful run
type Result struct {
	Stdout  string
	Stderr  string
	Elapsed time.Duration
}

// Effects returns the known effect names, sorted
func Effects() []string {
	names := make([]string, 0, len(binaries))
	for name := range binaries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether effect maps to a binary
func Known(effect string) bool {
	_, ok := binaries[effect]
	return ok
}

// Runner spawns the binaries found under BinDir
type Runner struct {
	BinDir  string
	Timeout time.Duration
	limiter *ratelimit.Adaptive
}

// NewRunner creates a runner. A nil limiter disables throttling.
func NewRunner(binDir string, timeout time.Duration, limiter *ratelimit.Adaptive) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{BinDir: binDir, Timeout: timeout, limiter: limiter}
}

// BinaryPath returns where the binary of effect is expected
func (r *Runner) BinaryPath(effect string) (string, error) {
	bin, ok := binaries[effect]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEffect, effect)
	}
	return filepath.Join(r.BinDir, bin), nil
}

// Run invokes `<bin> <input> <output> <factor>` and captures its output
func (r *Runner) Run(ctx context.Context, requestID, effect, input, output string, factor float64) (*Result, error) {
	bin, err := r.BinaryPath(effect)
	if err != nil {
		return nil, err
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, effect); err != nil {
			return nil, fmt.Errorf("waiting for %s slot: %w", effect, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	args := []string{input, output, helper.FormatFactor(factor)}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipeDrainDelay
	killGroupOnCancel(cmd)

	ymlogger.LogDebugf(requestID, "Running [%s %v]", bin, args)
	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)
	if r.limiter != nil {
		r.limiter.Record(effect, elapsed)
	}

	if ctx.Err() == context.DeadlineExceeded {
		ymlogger.LogErrorf(requestID, "%s timed out after %s", effect, r.Timeout)
		return nil, ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ToolError{Effect: effect, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("running %s: %w", bin, err)
	}
	ymlogger.LogInfof(requestID, "%s finished in %s", effect, elapsed)
	return &Result{Stdout: stdout.String(), Stderr: stderr.String(), Elapsed: elapsed}, nil
}

// Available reports, per effect, whether its binary exists and is executable
func (r *Runner) Available() map[string]bool {
	out := make(map[string]bool, len(binaries))
	for effect, bin := range binaries {
		fi, err := os.Stat(filepath.Join(r.BinDir, bin))
		out[effect] = err == nil && fi.Mode().IsRegular() && fi.Mode().Perm()&0111 != 0
	}
	return out
}

// Fraction returns the share of the max spawn rate currently allowed
func (r *Runner) Fraction() float64 {
	if r.limiter == nil {
		return 1
	}
	return r.limiter.Fraction()
}
