package main

import (
	"os"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"bitbucket.org/yellowmessenger/audiolab/ymlogger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "wavtool",
		Short:         "Generate, analyze and compare WAV files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configmanager.InitConfig(configFile); err != nil {
				return err
			}
			conf := configmanager.ConfStore.LoggerConf
			conf.LogSeverity = "ERROR"
			if err := ymlogger.InitYMLogger(conf); err != nil {
				return err
			}
			// tables go to stdout, log lines stay out of the way
			ymlogger.SetOutput(os.Stderr)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "config.json", "config file")

	root.AddCommand(
		newAnalyzeCmd(),
		newCompareCmd(),
		newVolumeReportCmd(),
		newFrequencyReportCmd(),
		newGenerateCmd(),
		newDownloadCmd(),
		newConvertCmd(),
	)
	return root
}
