package cmd

import (
	"github.com/spf13/cobra"

	"prepdeck/internal/logger"

	"go.uber.org/zap"
)

var (
	cfgFile   string
	debugFlag bool
	jsonFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "prepdeck",
	Short: "Interview practice backend",
	Long:  "Prepdeck — interview practice service: timed question sessions, AI answer scoring, skill tracking, and salary estimates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is prepdeck.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() (*zap.Logger, error) {
	return logger.New(jsonFlag, debugFlag)
}
