package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contractspec/contractspec/fetch"
)

func newFetchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a remote contract document",
		Long: `Fetch downloads a document from an HTTP(S) URL, converting HTML pages
to markdown, and writes it to a local file (or stdout) so it can be
verified like any other contract.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := fetch.NewFetcher()
			result, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Print(result.Markdown)
				return nil
			}

			if err := os.WriteFile(output, []byte(result.Markdown), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if result.Title != "" {
				fmt.Printf("fetched %q to %s\n", result.Title, output)
			} else {
				fmt.Printf("fetched %s to %s\n", args[0], output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
