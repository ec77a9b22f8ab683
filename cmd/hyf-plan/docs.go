package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/remarcmij/hyf-plan/internal/output"
)

// newDocsCmd creates the docs command.
func newDocsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate Markdown documentation for all commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd, outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "./docs", "Output directory for generated documentation")

	return cmd
}

// runDocs writes one Markdown file per command; the root page becomes README.md.
func runDocs(cmd *cobra.Command, outputDir string) error {
	printer := newPrinter(cmd)
	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return report(printer, nil, output.NewSystemErrorWithCause("creating "+outputDir+": "+err.Error(), err))
	}
	if err := doc.GenMarkdownTree(root, outputDir); err != nil {
		return report(printer, nil, output.NewSystemErrorWithCause("generating docs: "+err.Error(), err))
	}

	rootFile := filepath.Join(outputDir, root.Name()+".md")
	readme := filepath.Join(outputDir, "README.md")
	if _, err := os.Stat(rootFile); err == nil {
		if err := os.Rename(rootFile, readme); err != nil {
			return report(printer, nil, output.NewSystemErrorWithCause("renaming "+rootFile+": "+err.Error(), err))
		}
	}

	return printer.Success(map[string]any{
		"message": "Documentation written to " + outputDir,
		"dir":     outputDir,
	})
}
