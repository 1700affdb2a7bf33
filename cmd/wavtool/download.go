package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"bitbucket.org/yellowmessenger/audiolab/utils/download"
	"bitbucket.org/yellowmessenger/audiolab/utils/synth"
	"github.com/spf13/cobra"
)

func newDownloadCmd() *cobra.Command {
	var (
		dir  string
		urls []string
	)
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Write the sample melody and try to fetch sample files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			melody := filepath.Join(dir, "sample_music.wav")
			if err := synth.WriteMelody(melody, synth.DefaultSampleRate); err != nil {
				return err
			}
			fmt.Fprintf(w, "Created %s (3-second melody)\n\n", melody)

			samples := download.DefaultSamples
			if len(urls) > 0 {
				samples = samplesFromURLs(urls)
			}
			fmt.Fprintln(w, "Attempting to download sample files...")
			for _, s := range samples {
				dst := filepath.Join(dir, s.FileName)
				if _, err := download.Fetch(cmd.Context(), s.URL, dst); err != nil {
					fmt.Fprintf(w, "Failed to download %s: %v\n", s.FileName, err)
					continue
				}
				fmt.Fprintf(w, "Downloaded %s\n", s.FileName)
			}
			fmt.Fprintln(w)
			return listWAVs(w, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "destination directory")
	cmd.Flags().StringSliceVar(&urls, "url", nil, "sample URLs to fetch instead of the defaults")
	return cmd
}

func samplesFromURLs(urls []string) []download.Sample {
	out := make([]download.Sample, 0, len(urls))
	for _, raw := range urls {
		name := "sample.wav"
		if u, err := url.Parse(raw); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
			name = path.Base(u.Path)
		}
		out = append(out, download.Sample{URL: raw, FileName: name})
	}
	return out
}

// listWAVs prints every .wav in dir with its size in KB
func listWAVs(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".wav") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	fmt.Fprintln(w, "Available WAV files for testing:")
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "   - %s (%.1f KB)\n", name, float64(info.Size())/1024)
	}
	return nil
}
