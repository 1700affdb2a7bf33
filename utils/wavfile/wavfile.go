// Package wavfile reads and writes PCM WAV files on top of go-audio/wav.
package wavfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// chunkFrames is how many frames are decoded per PCMBuffer call
const chunkFrames = 4096

var (
	// ErrInvalidFile is returned when the RIFF/WAVE container can't be parsed
	ErrInvalidFile = errors.New("not a valid WAV file")
	// ErrUnsupportedFormat is returned for non-PCM encodings
	ErrUnsupportedFormat = errors.New("unsupported WAV encoding, only PCM is supported")
)

// Info is the header metadata of a WAV file
type Info struct {
	Frames      int
	SampleRate  int
	Channels    int
	SampleWidth int // bytes per sample
	BitDepth    int
}

// Duration returns the length of the file in seconds
func (i Info) Duration() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// Clip holds the header and the first channel of the decoded samples
type Clip struct {
	Info
	Samples []int
}

// ReadInfo reads only the header of the file
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	_, info, err := openDecoder(f)
	return info, err
}

// Read decodes up to maxFrames frames (all of them when maxFrames <= 0) and
// keeps the first sample of every frame. 8-bit data is re-centred around zero.
func Read(path string, maxFrames int) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, info, err := openDecoder(f)
	if err != nil {
		return nil, err
	}

	want := info.Frames
	if maxFrames > 0 && maxFrames < want {
		want = maxFrames
	}
	clip := &Clip{Info: info, Samples: make([]int, 0, want)}

	buf := &audio.IntBuffer{
		Format: d.Format(),
		Data:   make([]int, chunkFrames*info.Channels),
	}
	offset := 0
	if info.BitDepth == 8 {
		offset = 128
	}
	for len(clip.Samples) < want {
		n, err := d.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("decoding samples: %w", err)
		}
		if n == 0 {
			break
		}
		for i := 0; i+info.Channels <= n && len(clip.Samples) < want; i += info.Channels {
			clip.Samples = append(clip.Samples, buf.Data[i]-offset)
		}
	}
	return clip, nil
}

func openDecoder(f *os.File) (*wav.Decoder, Info, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, Info{}, ErrInvalidFile
	}
	if d.WavAudioFormat != pcmFormat {
		return nil, Info{}, ErrUnsupportedFormat
	}
	if d.NumChans == 0 || d.SampleRate == 0 || d.BitDepth == 0 {
		return nil, Info{}, ErrInvalidFile
	}
	if err := d.FwdToPCM(); err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	width := int(d.BitDepth+7) / 8
	info := Info{
		SampleRate:  int(d.SampleRate),
		Channels:    int(d.NumChans),
		SampleWidth: width,
		BitDepth:    int(d.BitDepth),
		Frames:      d.PCMSize / (width * int(d.NumChans)),
	}
	return d, info, nil
}

// Format describes the PCM layout used by Write
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// Write encodes interleaved samples as a PCM WAV file
func Write(path string, format Format, samples []int) error {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return fmt.Errorf("invalid format %+v", format)
	}
	if format.BitDepth == 0 {
		format.BitDepth = 16
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: format.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
