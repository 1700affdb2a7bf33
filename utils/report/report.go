// Package report renders the text tables used to check the effect binaries
// against their inputs.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bitbucket.org/yellowmessenger/audiolab/utils/analysis"
	"bitbucket.org/yellowmessenger/audiolab/utils/helper"
)

// DefaultExpectedFactor is the volume factor the comparison checks against
const DefaultExpectedFactor = 2.0

// SampleRows is the number of leading samples in the comparison
const SampleRows = 10

// Single writes one file's stats block
func Single(w io.Writer, label string, s *analysis.Stats) {
	fmt.Fprintf(w, "%s: %s\n", label, s.FileName)
	fmt.Fprintf(w, "  Duration: %.2f seconds\n", s.Duration)
	fmt.Fprintf(w, "  Sample rate: %d Hz\n", s.SampleRate)
	fmt.Fprintf(w, "  Channels: %d\n", s.Channels)
	fmt.Fprintf(w, "  Max amplitude: %d\n", s.MaxAmplitude)
	fmt.Fprintf(w, "  RMS level: %.2f\n", s.RMS)
	fmt.Fprintf(w, "  Dominant frequency: %.1f Hz\n", s.DominantFrequency)
}

// Comparison writes the input and output stats, the measured scaling factor
// and the first few samples side by side.
func Comparison(w io.Writer, in, out string, expected float64) error {
	inStats, inSamples, err := analysis.AnalyzeFile(in, analysis.Options{})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", in, err)
	}
	outStats, outSamples, err := analysis.AnalyzeFile(out, analysis.Options{})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", out, err)
	}

	fmt.Fprintln(w, "=== WAV File Analysis ===")
	Single(w, "Input file", inStats)
	fmt.Fprintln(w)
	Single(w, "Output file", outStats)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Actual scaling factor: %.2f (expected: %s)\n\n",
		ratio(float64(outStats.MaxAmplitude), float64(inStats.MaxAmplitude)), helper.FormatFactor(expected))

	fmt.Fprintf(w, "=== Sample Comparison (first %d samples) ===\n", SampleRows)
	fmt.Fprintln(w, "Sample # | Input | Output | Ratio")
	fmt.Fprintln(w, strings.Repeat("-", 35))
	n := SampleRows
	if len(inSamples) < n {
		n = len(inSamples)
	}
	if len(outSamples) < n {
		n = len(outSamples)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%7d | %6d | %6d | %5.2f\n", i, inSamples[i], outSamples[i],
			ratio(float64(outSamples[i]), float64(inSamples[i])))
	}
	return nil
}

// VolumeTable writes one row per file with its peak relative to the first file
func VolumeTable(w io.Writer, files []string) error {
	results, err := collect(files, w)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== Volume Scaling Results ===")
	fmt.Fprintln(w, "File           | Duration | Max Amp | RMS Level | Factor")
	fmt.Fprintln(w, strings.Repeat("-", 55))
	if len(results) == 0 {
		return nil
	}
	base := float64(results[0].MaxAmplitude)
	for _, s := range results {
		fmt.Fprintf(w, "%-14s | %8.2f | %7d | %9.2f | %5.2f\n",
			s.FileName, s.Duration, s.MaxAmplitude, s.RMS, ratio(float64(s.MaxAmplitude), base))
	}
	return nil
}

// FrequencyTable writes one row per file with its dominant frequency,
// followed by the sample-rate change of every "high" or "low" variant.
func FrequencyTable(w io.Writer, files []string) error {
	fmt.Fprintln(w, "=== Audio Frequency Analysis ===")
	fmt.Fprintln(w, "File                | Duration | Sample Rate | Max Amp | Dominant Freq")
	fmt.Fprintln(w, strings.Repeat("-", 65))

	results, err := collect(files, nil)
	if err != nil {
		return err
	}
	for _, s := range results {
		fmt.Fprintf(w, "%-18s | %8.2f | %11d | %7d | %12.1f Hz\n",
			s.FileName, s.Duration, s.SampleRate, s.MaxAmplitude, s.DominantFrequency)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Summary ===")
	if len(results) < 2 {
		return nil
	}
	base := results[0]
	fmt.Fprintf(w, "Original file: %s\n", base.FileName)
	fmt.Fprintf(w, "  - Sample rate: %d Hz\n", base.SampleRate)
	fmt.Fprintf(w, "  - Dominant frequency: %.1f Hz\n\n", base.DominantFrequency)
	for _, s := range results[1:] {
		if strings.Contains(s.FileName, "high") || strings.Contains(s.FileName, "low") {
			fmt.Fprintf(w, "%s: Sample rate changed by factor %.2f\n",
				s.FileName, ratio(float64(s.SampleRate), float64(base.SampleRate)))
		}
	}
	return nil
}

// collect analyzes every file and skips the missing ones, noting them on
// notFound when it is set.
func collect(files []string, notFound io.Writer) ([]*analysis.Stats, error) {
	results := make([]*analysis.Stats, 0, len(files))
	for _, f := range files {
		stats, _, err := analysis.AnalyzeFile(f, analysis.Options{})
		if errors.Is(err, os.ErrNotExist) {
			if notFound != nil {
				fmt.Fprintf(notFound, "File %s not found\n", f)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", f, err)
		}
		results = append(results, stats)
	}
	return results, nil
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
