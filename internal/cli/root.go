// Package cli provides the command-line interface for vidqa.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/vidqa/internal/app"
	"github.com/raphaelgruber/vidqa/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	storeFlag string

	// Global config and wired components
	cfg         config.Config
	application *app.App
	logCleanup  = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vidqa",
	Short: "Ask questions about YouTube videos, answered from their transcripts",
	Long: `vidqa indexes YouTube transcripts and answers questions about them.

Answers are grounded in the transcript only: when the video does not cover a
question, vidqa says so instead of guessing. Every answer carries [MM:SS]
citations that link to the moment in the video.

Summary requests ("summarize", "key takeaways", ...) sample the whole video;
other questions retrieve the most relevant excerpts. In chat, follow-up
questions are rewritten into standalone questions before retrieval.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if storeFlag != "" {
			cfg.Store = config.Store(storeFlag)
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		var logger *slog.Logger
		logger, logCleanup = config.SetupLogger(cfg.LogFile, quietLevel(cfg.LogLevel))

		var err error
		application, err = app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close(context.Background())
		}
		_ = logCleanup()
	},
}

// quietLevel keeps INFO logs out of the terminal unless verbose output was
// requested; they still reach the log file.
func quietLevel(level slog.Level) slog.Level {
	if verbose || level > slog.LevelInfo {
		return level
	}
	return slog.LevelWarn
}

// Execute adds all child commands to the root command and runs it until
// completion or an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "index backend: surrealdb or memory (default from VIDQA_STORE)")

	// Add subcommands
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vidqa %s\n", Version)
	},
}
