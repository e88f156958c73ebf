package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contractspec/contractspec/scaffold"
)

func newInitCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Scaffold a starter contract workspace",
		Long: `Init writes a starter workspace: a primitives.md shared vocabulary, an
example contract under contracts/, and a contractspec.yaml config.
Existing files are left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			if project == "" {
				abs, err := filepath.Abs(root)
				if err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
				project = filepath.Base(abs)
			}

			created, err := scaffold.NewManager(root).Init(project)
			if err != nil {
				return err
			}

			if len(created) == 0 {
				fmt.Println("Workspace already initialized; nothing to do")
				return nil
			}
			for _, path := range created {
				fmt.Printf("created %s\n", path)
			}
			fmt.Fprintf(os.Stdout, "\nRun: %s verify %s %s\n",
				appName,
				filepath.Join(root, scaffold.PrimitivesFile),
				filepath.Join(root, scaffold.ContractsDir, "*.md"))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name used in templates (default: directory name)")

	return cmd
}
