package main

import (
	"fmt"
	"os"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/utils/convert"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		src   string
		dst   string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert system sounds to 16-bit WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if _, err := os.Stat(src); err != nil {
				return fmt.Errorf("sounds directory not found: %w", err)
			}
			if err := os.MkdirAll(dst, 0755); err != nil {
				return err
			}
			c := convert.New(configmanager.ConfStore.Convert)
			converted, failures, err := c.ConvertDir(cmd.Context(), src, dst, limit)
			if err != nil {
				return err
			}
			for _, f := range failures {
				fmt.Fprintf(w, "Failed to convert %s\n", f.Error())
			}
			fmt.Fprintf(w, "Successfully converted %d files\n\n", converted)
			return listWAVs(w, dst)
		},
	}
	cmd.Flags().StringVar(&src, "src", convert.SystemSoundsDir, "directory of .aiff files")
	cmd.Flags().StringVar(&dst, "dst", "tests", "destination directory")
	cmd.Flags().IntVar(&limit, "limit", convert.DefaultLimit, "number of files to convert")
	return cmd
}
