// Package analysis computes the basic statistics reported for a WAV file:
// duration, peak amplitude, RMS level and a dominant-frequency estimate.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"os"

	"bitbucket.org/yellowmessenger/audiolab/utils/wavfile"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrNoSamples is returned by AnalyzeFile for a file without audio frames
var ErrNoSamples = errors.New("analysis: no samples")

// DefaultFFTSize is the number of leading samples used for the frequency estimate
const DefaultFFTSize = 1024

// Stats is the analysis result of a single file
type Stats struct {
	FileName          string  `json:"filename,omitempty"`
	Duration          float64 `json:"duration"`
	SampleRate        int     `json:"sample_rate"`
	Channels          int     `json:"channels"`
	SampleWidth       int     `json:"sample_width"`
	MaxAmplitude      int     `json:"max_amplitude"`
	RMS               float64 `json:"rms"`
	DominantFrequency float64 `json:"dominant_freq"`
	FileSize          int64   `json:"file_size"`
}

// Options tune AnalyzeFile
type Options struct {
	// MaxFrames caps the number of decoded frames, 0 reads the whole file
	MaxFrames int
	// FFTSize defaults to DefaultFFTSize
	FFTSize int
}

// MaxAmplitude returns max |x|
func MaxAmplitude(samples []int) int {
	peak := 0
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// RMS returns sqrt(mean(x^2))
func RMS(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// DominantFrequency returns the frequency of the strongest FFT bin over the
// first fftSize samples. The DC bin and everything from n/2 up are ignored,
// so fewer than 4 samples yield 0.
func DominantFrequency(samples []int, sampleRate int, fftSize int) float64 {
	if fftSize <= 0 {
		fftSize = DefaultFFTSize
	}
	n := len(samples)
	if n > fftSize {
		n = fftSize
	}
	if n/2 <= 1 || sampleRate <= 0 {
		return 0
	}

	seq := make([]float64, n)
	for i := range seq {
		seq[i] = float64(samples[i])
	}
	coeffs := fourier.NewFFT(n).Coefficients(nil, seq)

	best, bestMag := 1, -1.0
	for i := 1; i < n/2; i++ {
		if m := cmplx.Abs(coeffs[i]); m > bestMag {
			best, bestMag = i, m
		}
	}
	return float64(best) * float64(sampleRate) / float64(n)
}

// Analyze computes the statistics of an already decoded clip
func Analyze(clip *wavfile.Clip, fftSize int) Stats {
	return Stats{
		Duration:          clip.Duration(),
		SampleRate:        clip.SampleRate,
		Channels:          clip.Channels,
		SampleWidth:       clip.SampleWidth,
		MaxAmplitude:      MaxAmplitude(clip.Samples),
		RMS:               RMS(clip.Samples),
		DominantFrequency: DominantFrequency(clip.Samples, clip.SampleRate, fftSize),
	}
}

// AnalyzeFile decodes path and returns its statistics along with the decoded
// samples, which the comparison report needs.
func AnalyzeFile(path string, opts Options) (*Stats, []int, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	clip, err := wavfile.Read(path, opts.MaxFrames)
	if err != nil {
		return nil, nil, err
	}
	if len(clip.Samples) == 0 {
		return nil, nil, ErrNoSamples
	}
	stats := Analyze(clip, opts.FFTSize)
	stats.FileName = path
	stats.FileSize = fi.Size()
	return &stats, clip.Samples, nil
}

// Round rounds v to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
