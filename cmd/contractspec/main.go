// Package main provides the contractspec binary entry point.
// Contractspec statically cross-checks code-like declarations embedded
// in prose contract documents against a shared vocabulary document.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contractspec/contractspec/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "contractspec"
)

// errVerificationFailed distinguishes "verification completed and found
// errors" (exit 1) from fatal failures (exit 2).
var errVerificationFailed = errors.New("verification failed")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		if errors.Is(err, errVerificationFailed) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Cross-document contract consistency checker",
		Long: `Contractspec verifies that declarations made across a set of contract
documents are mutually consistent: every imported name resolves to a
compatible declaration, no contracts form a dependency cycle, and
near-duplicate names are flagged.

Documents are markdown files with declarations inside fenced code
blocks; plain declaration files work too.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVerifyCmd(&configPath))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// configureLogging installs the default slog handler at the requested
// level, writing to stderr so report output on stdout stays clean.
func configureLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig resolves configuration: an explicit --config path wins,
// otherwise the layered loader looks for user and project config.
func loadConfig(configPath string) (*config.Config, error) {
	loader := config.NewLoader(slog.Default())
	if configPath != "" {
		cfg, err := loader.LoadPath(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		return cfg, nil
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
