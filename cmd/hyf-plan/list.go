package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remarcmij/hyf-plan/internal/schedule"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming module plans",
		Long: `List module plans whose first lecture date is still ahead, earliest first.

Examples:
  hyf-plan list           # Upcoming plans
  hyf-plan list --all     # Include plans that already started
  hyf-plan list --json    # Machine-readable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, allFlag)
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Include plans that already started")

	return cmd
}

func runList(cmd *cobra.Command, allFlag bool) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		return report(printer, nil, err)
	}
	st := store.New(settings.DataDir)

	enum := schedule.NewEnumerator(st, nil)
	scan := enum.Upcoming
	if allFlag {
		scan = enum.All
	}
	choices, stats, err := scan(cmd.Context())
	if err != nil {
		return report(printer, st, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count": len(choices),
			"plans": choices,
			"stats": stats,
		})
	}

	if n := stats.Skipped(); n > 0 {
		printer.Warn("skipped %d malformed plan file(s) in %s", n, filepath.Join(st.Dir(), string(store.KindPlan)))
	}
	if len(choices) == 0 {
		printer.Println("No upcoming plans.")
		if !allFlag && stats.Past > 0 {
			printer.Stderr("%d plan(s) already started; use --all to list them.\n", stats.Past)
		}
		return nil
	}

	rows := make([][]string, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, []string{c.ID, c.FirstDate})
	}
	printer.Table([]string{"PLAN", "FIRST LECTURE"}, rows)
	return nil
}
