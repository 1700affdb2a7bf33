package main

import (
	"fmt"

	"bitbucket.org/yellowmessenger/audiolab/utils/synth"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write test signals",
	}

	var (
		toneOut  string
		freq     float64
		duration float64
		toneRate int
	)
	tone := &cobra.Command{
		Use:   "tone",
		Short: "Write a 16-bit mono sine wave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := synth.WriteTone(toneOut, freq, duration, toneRate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s - a %g-second %gHz sine wave\n", toneOut, duration, freq)
			return nil
		},
	}
	tone.Flags().StringVar(&toneOut, "out", "tests/input.wav", "output file")
	tone.Flags().Float64Var(&freq, "freq", 440, "frequency in Hz")
	tone.Flags().Float64Var(&duration, "duration", 2, "duration in seconds")
	tone.Flags().IntVar(&toneRate, "rate", synth.DefaultSampleRate, "sample rate")

	var (
		melodyOut  string
		melodyRate int
	)
	melody := &cobra.Command{
		Use:   "melody",
		Short: "Write the 3-second A4, C5, E5 melody",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := synth.WriteMelody(melodyOut, melodyRate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (3-second melody)\n", melodyOut)
			return nil
		},
	}
	melody.Flags().StringVar(&melodyOut, "out", "sample_music.wav", "output file")
	melody.Flags().IntVar(&melodyRate, "rate", synth.DefaultSampleRate, "sample rate")

	cmd.AddCommand(tone, melody)
	return cmd
}
