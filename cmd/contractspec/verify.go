package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/contractspec/contractspec/export"
	"github.com/contractspec/contractspec/model"
	"github.com/contractspec/contractspec/verify"
	"github.com/contractspec/contractspec/watch"
)

func newVerifyCmd(configPath *string) *cobra.Command {
	var (
		format    string
		verbose   bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "verify <vocabulary> <contract>...",
		Short: "Verify contract documents against the shared vocabulary",
		Long: `Verify runs the full consistency check: import resolution, dependency
cycle detection, naming audit, and shape comparison. Contract arguments
may be glob patterns ("contracts/**/*.md").

Exits 0 when verification passes, 1 when error-severity issues were
found, and 2 on fatal failures such as an unreadable document.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			outFormat := export.Format(strings.ToLower(format))
			if _, ok := export.GetFormatInfo(outFormat); !ok {
				return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
			}

			vocabPath := args[0]
			contractPaths, err := expandContractPaths(args[1:])
			if err != nil {
				return err
			}
			if len(contractPaths) == 0 {
				return fmt.Errorf("no contract documents matched %v", args[1:])
			}

			verifier := verify.New(cfg, slog.Default())

			runOnce := func() (*verify.Result, error) {
				result, err := verifier.Run(vocabPath, contractPaths)
				if err != nil {
					return nil, err
				}
				if verbose && outFormat == export.FormatText {
					printDocumentDetail(result)
				}
				rendered, err := export.Render(result.Report, outFormat)
				if err != nil {
					return nil, err
				}
				_, _ = os.Stdout.Write(rendered)
				return result, nil
			}

			result, err := runOnce()
			if err != nil {
				return err
			}

			if watchMode {
				return watchAndRerun(cmd, append([]string{vocabPath}, contractPaths...), runOnce)
			}

			if !result.Report.Passed {
				return errVerificationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-document declarations and imports")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-run verification when documents change")

	return cmd
}

// expandContractPaths expands glob patterns to concrete files. A
// pattern without glob characters passes through untouched so a missing
// file stays a fatal error rather than an empty match.
func expandContractPaths(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches := []string{pattern}
		if strings.ContainsAny(pattern, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// watchAndRerun blocks re-running verification on changes until
// interrupted. Watch mode always exits 0 on interrupt; per-run
// pass/fail is visible in the printed reports.
func watchAndRerun(cmd *cobra.Command, files []string, runOnce func() (*verify.Result, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.NewWatcher(files, watch.DefaultDebounce, slog.Default())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")
	err = watcher.Run(ctx, func() {
		fmt.Fprintln(os.Stderr, "\nDocuments changed; re-running verification")
		if _, err := runOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// printDocumentDetail lists each document's declarations and imports.
func printDocumentDetail(result *verify.Result) {
	docs := append([]*model.Document{result.Vocabulary}, result.Contracts...)
	for _, doc := range docs {
		fmt.Printf("%s:\n", doc.ID)
		for _, decl := range doc.Declarations {
			fmt.Printf("  declares %-12s %s (line %d)\n", string(decl.Kind), decl.Name, decl.Line)
		}
		for _, imp := range doc.Imports {
			fmt.Printf("  imports  %s from %q (line %d)\n", imp.Name, imp.Module, imp.Line)
		}
	}
	fmt.Println()
}
