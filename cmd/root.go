package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "wv [paths...]",
	Short:            "wv - a partial-correctness verifier for annotated While programs",
	Version:          "0.1.0",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'wv' is entered
			_ = cmd.Help()
			return
		}
		// Format: wv [path1 path2 ...] => behaves like the verify subcommand
		verifyCmd.Run(verifyCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func initLogger() {
	if logger != nil {
		return
	}
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file (default \".wv.yaml\" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(vcsCmd)
}
