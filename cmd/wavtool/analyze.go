package main

import (
	"fmt"

	"bitbucket.org/yellowmessenger/audiolab/utils/analysis"
	"bitbucket.org/yellowmessenger/audiolab/utils/report"
	"github.com/spf13/cobra"
)

var (
	defaultVolumeFiles = []string{"tests/input.wav", "tests/output.wav", "tests/output_half.wav"}

	defaultFrequencyFiles = []string{
		"tests/input.wav",
		"tests/output_high.wav",
		"tests/output_low.wav",
		"tests/output_pitch_high.wav",
		"tests/output_pitch_low.wav",
	}
)

func newAnalyzeCmd() *cobra.Command {
	var maxFrames int
	cmd := &cobra.Command{
		Use:   "analyze <files...>",
		Short: "Print the statistics of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for i, f := range args {
				stats, _, err := analysis.AnalyzeFile(f, analysis.Options{MaxFrames: maxFrames})
				if err != nil {
					return fmt.Errorf("analyze %s: %w", f, err)
				}
				if i > 0 {
					fmt.Fprintln(w)
				}
				report.Single(w, "File", stats)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "decode at most this many frames, 0 for all")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var expected float64
	cmd := &cobra.Command{
		Use:   "compare <input> <output>",
		Short: "Compare an effect output against its input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Comparison(cmd.OutOrStdout(), args[0], args[1], expected)
		},
	}
	cmd.Flags().Float64Var(&expected, "expected", report.DefaultExpectedFactor, "expected volume factor")
	return cmd
}

func newVolumeReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volume-report [files...]",
		Short: "Tabulate the peak of each file relative to the first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = defaultVolumeFiles
			}
			return report.VolumeTable(cmd.OutOrStdout(), args)
		},
	}
}

func newFrequencyReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frequency-report [files...]",
		Short: "Tabulate the sample rate and dominant frequency of each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = defaultFrequencyFiles
			}
			return report.FrequencyTable(cmd.OutOrStdout(), args)
		},
	}
}
