package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfigDir string
	flagDBPath    string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "tilehop",
	Short: "A two-level platformer built from Tiled maps",
	Long:  "tilehop runs Tiled JSON maps as a platformer. Collect gems and reach the exit door.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "load game.yaml, maps and images from this directory instead of the built-in set")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "path to the score database (default from game.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scoresCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilehop",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
