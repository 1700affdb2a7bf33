// Package synth generates the test signals used to exercise the effects.
package synth

import (
	"fmt"
	"math"

	"bitbucket.org/yellowmessenger/audiolab/utils/wavfile"
)

const (
	// DefaultSampleRate of generated files
	DefaultSampleRate = 44100
	// FullScale is the amplitude of the reference tone
	FullScale = 32767
	// HalfScale is the amplitude of the melody
	HalfScale = 16383
)

// Note is one segment of a melody
type Note struct {
	Frequency float64
	Seconds   float64
}

// DefaultMelody is A4, C5, E5 for one second each
var DefaultMelody = []Note{{440, 1}, {523, 1}, {659, 1}}

// Tone returns a mono sine wave
func Tone(freq, seconds float64, sampleRate int, amplitude float64) ([]int, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("duration must be > 0: %f", seconds)
	}
	n := int(seconds * float64(sampleRate))
	out := make([]int, n)
	for i := range out {
		out[i] = int(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * amplitude)
	}
	return out, nil
}

// Melody concatenates the notes. The phase runs on absolute time so the
// segments join the way a single oscillator changing pitch would.
func Melody(notes []Note, sampleRate int, amplitude float64) ([]int, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}
	var total float64
	for _, n := range notes {
		total += n.Seconds
	}
	count := int(total * float64(sampleRate))
	out := make([]int, count)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		freq := notes[len(notes)-1].Frequency
		var end float64
		for _, n := range notes {
			end += n.Seconds
			if t < end {
				freq = n.Frequency
				break
			}
		}
		out[i] = int(math.Sin(2*math.Pi*freq*t) * amplitude)
	}
	return out, nil
}

// WriteTone writes a 16-bit mono sine wave to path
func WriteTone(path string, freq, seconds float64, sampleRate int) error {
	samples, err := Tone(freq, seconds, sampleRate, FullScale)
	if err != nil {
		return err
	}
	return wavfile.Write(path, wavfile.Format{SampleRate: sampleRate, BitDepth: 16, Channels: 1}, samples)
}

// WriteMelody writes the default three-note melody to path
func WriteMelody(path string, sampleRate int) error {
	samples, err := Melody(DefaultMelody, sampleRate, HalfScale)
	if err != nil {
		return err
	}
	return wavfile.Write(path, wavfile.Format{SampleRate: sampleRate, BitDepth: 16, Channels: 1}, samples)
}
