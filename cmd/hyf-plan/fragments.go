package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/remarcmij/hyf-plan/internal/issue"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// newFragmentsCmd creates the fragments command.
func newFragmentsCmd() *cobra.Command {
	var showFlag bool

	cmd := &cobra.Command{
		Use:   "fragments <class>.<module>",
		Short: "Show which layer supplies each template fragment",
		Long: `Show the effective template fragments for a plan and where each comes from.

Layers, weakest first: built-in, global, module, class, plan.

Examples:
  hyf-plan fragments cs101.algo1          # Table of fragments and sources
  hyf-plan fragments cs101.algo1 --show   # Include the fragment text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFragments(cmd, args[0], showFlag)
		},
	}

	cmd.Flags().BoolVar(&showFlag, "show", false, "Print the text of each fragment")

	return cmd
}

type fragmentInfo struct {
	Name       string   `json:"name"`
	Source     string   `json:"source"`
	Overridden []string `json:"overridden,omitempty"`
	Text       string   `json:"text"`
}

func runFragments(cmd *cobra.Command, id string, showFlag bool) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		return report(printer, nil, err)
	}
	st := store.New(settings.DataDir)

	iss, err := issue.NewGenerator(st, settings.GeneratorOptions()).Build(cmd.Context(), id)
	if err != nil {
		return report(printer, st, err)
	}

	infos := make([]fragmentInfo, 0, len(iss.Fragments.Names()))
	for _, name := range iss.Fragments.Names() {
		text, _ := iss.Fragments.Lookup(name)
		infos = append(infos, fragmentInfo{
			Name:       name,
			Source:     iss.Fragments.Source(name),
			Overridden: iss.Fragments.Overridden(name),
			Text:       text,
		})
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"plan_id": iss.ID, "fragments": infos})
	}

	if showFlag {
		for _, info := range infos {
			printer.Section(info.Name)
			printer.KeyValue("source", info.Source)
			if len(info.Overridden) > 0 {
				printer.KeyValue("overrides", strings.Join(info.Overridden, ", "))
			}
			printer.Box("", info.Text)
		}
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Source, strings.Join(info.Overridden, ", ")})
	}
	printer.Table([]string{"FRAGMENT", "SOURCE", "OVERRIDES"}, rows)
	return nil
}
