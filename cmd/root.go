// Package cmd holds the travelbot command line: serve, chat and migrate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "travelbot",
	Short: "TravelBot is a conversational travel booking assistant",
	Long:  `TravelBot routes each chat turn to an authenticator, trip planner, info desk or booking confirmer.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		envFile, _ := cmd.Flags().GetString("env")
		configx.SetEnvFile(envFile)
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "Path to an env file (defaults to ./.env when present)")
}
