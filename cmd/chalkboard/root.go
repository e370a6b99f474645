package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumilearn/chalkboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "chalkboard",
	Short: "Chalkboard is an animated explanation playback engine",
	Long:  `Chalkboard plays structured, step-by-step explanations: timed narration with a typewriter reveal and text annotations matched against passage text.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newLogger builds the command logger from the --log-level flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		level = slog.LevelInfo
	}
	return logging.New(level)
}
