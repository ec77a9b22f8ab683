package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/remarcmij/hyf-plan/internal/config"
	"github.com/remarcmij/hyf-plan/internal/issue"
	"github.com/remarcmij/hyf-plan/internal/output"
	"github.com/remarcmij/hyf-plan/internal/picker"
	"github.com/remarcmij/hyf-plan/internal/schedule"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// loadSettings resolves settings from the command's flags.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return settings, nil
}

// runGenerate writes (or prints) the issue for the plan in args, asking
// interactively when no plan is given.
func runGenerate(cmd *cobra.Command, args []string, toStdout bool) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		return report(printer, nil, err)
	}
	st := store.New(settings.DataDir)

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		if id, err = choosePlan(cmd, printer, st); err != nil {
			return report(printer, st, err)
		}
	}

	gen := issue.NewGenerator(st, settings.GeneratorOptions())

	if toStdout {
		iss, err := gen.Build(cmd.Context(), id)
		if err != nil {
			return report(printer, st, err)
		}
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{
				"plan_id": iss.ID,
				"weeks":   iss.Weeks,
				"content": iss.Content,
			})
		}
		printer.Println(iss.Content)
		return nil
	}

	res, err := gen.Generate(cmd.Context(), id)
	if err != nil {
		return report(printer, st, err)
	}
	return printer.Success(map[string]any{
		"message": createdMessage(res.Path, settings.OutDir),
		"plan_id": res.ID,
		"path":    res.Path,
		"weeks":   res.Weeks,
	})
}

func createdMessage(path, outDir string) string {
	where := "current directory"
	if outDir != "" {
		where = outDir
	}
	return fmt.Sprintf("%s created in %s.", filepath.Base(path), where)
}

// choosePlan asks the user to pick one of the upcoming plans.
func choosePlan(cmd *cobra.Command, printer *output.Printer, st *store.Store) (string, error) {
	in, ok := cmd.InOrStdin().(*os.File)
	if printer.IsJSON() || !ok || !output.IsTTY(in) || !output.IsTTY(cmd.OutOrStdout()) {
		return "", output.NewUserError("no plan given: pass <class>.<module> (see 'hyf-plan list')")
	}

	choices, stats, err := schedule.NewEnumerator(st, nil).Upcoming(cmd.Context())
	if err != nil {
		return "", err
	}
	if n := stats.Skipped(); n > 0 {
		printer.Warn("skipped %d malformed plan file(s) in %s", n, filepath.Join(st.Dir(), string(store.KindPlan)))
	}
	if len(choices) == 0 {
		return "", output.NewUserError("no upcoming plans in " + filepath.Join(st.Dir(), string(store.KindPlan)))
	}

	label, err := picker.Pick(cmd.Context(), in, cmd.OutOrStdout(), choices)
	if err != nil {
		return "", err
	}
	return schedule.IDFromLabel(label), nil
}
