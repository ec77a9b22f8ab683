// Package main provides the entry point for the hyf-plan CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/remarcmij/hyf-plan/internal/config"
	"github.com/remarcmij/hyf-plan/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2025-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return flagValue(cmd, "json") == "true"
}

// flagValue looks a flag up on cmd, then on the root's persistent flags.
func flagValue(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer for cmd from --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	color := output.ResolveColorMode(flagValue(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	)
	return output.GetExitCode(err)
}

// handleError leaves errors the printer already reported alone and lets
// fang format the rest (flag and argument errors from cobra).
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// newRootCmd creates the root command. Run without a subcommand it
// generates an issue.
func newRootCmd() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "hyf-plan [<class>.<module>]",
		Short: "Generate the Markdown issue for a scheduled course module",
		Long: `hyf-plan builds a ready-to-paste issue for a module plan: the lecture
dates, the teachers and a student checklist per week.

Data is read from the data directory:
  config/config.yml          global fragments and module names
  modules/<module>.yml       optional module fragments
  classes/<class>.yml        class name and students
  plans/<class>.<module>.yml lecture dates and teachers

Fragments from later files override earlier ones. The issue is written
to <class>.<module>.issue.md.

Examples:
  hyf-plan                         # Choose an upcoming plan interactively
  hyf-plan cs101.algo1             # Generate cs101.algo1.issue.md
  hyf-plan cs101.algo1 --stdout    # Print instead of writing`,
		Args:          cobra.MaximumNArgs(1),
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, toStdout)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadEnvFiles(); err != nil {
			return report(newPrinter(cmd), nil, err)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the issue instead of writing the file")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "plan", Title: "Plan Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newListCmd(), "plan")
	addGroupedCommand(cmd, newFragmentsCmd(), "plan")
	addGroupedCommand(cmd, newServeCmd(), "agent")
	addGroupedCommand(cmd, newDocsCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
