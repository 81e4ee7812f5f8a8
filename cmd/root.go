package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "palabras",
	Short:        "Vocabulary trainer",
	Long:         "palabras grades typed translations, tracks how well each vocab is known and picks what to study next.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (JSON, YAML or TOML); environment variables override it")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportMissingCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(botCmd)
}
