package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose       bool
	quiet         bool
	jsonOut       bool
	workers       int
	canonicalGUID bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "artifactctl",
	Short: "Decode Windows forensic artifacts from offline evidence files",
	Long: `artifactctl decodes forensic artifacts from files collected off a
Windows system: local accounts from the SAM hive, program execution traces
from BAM, UserAssist and the AppCompatCache, Recycle Bin $I records, and
individual ESE column values.

Records that cannot be decoded are reported on stderr and skipped; the rest
of the file is still processed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Files decoded in parallel")
	rootCmd.PersistentFlags().
		BoolVar(&canonicalGUID, "canonical-guid", false, "Render ESE Guid columns as {XXXXXXXX-...} instead of text")
}

func newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
