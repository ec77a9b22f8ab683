package main

import (
	"context"
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/remarcmij/hyf-plan/internal/issue"
	"github.com/remarcmij/hyf-plan/internal/output"
	"github.com/remarcmij/hyf-plan/internal/picker"
	"github.com/remarcmij/hyf-plan/internal/store"
)

const maxSuggestions = 3

// report prints err and returns it as an *output.ExitError.
// st, when set, is used to suggest plan identifiers for unknown plans.
func report(printer *output.Printer, st *store.Store, err error) error {
	exitErr := classifyError(err, st)
	printer.Error(exitErr)
	return exitErr
}

// classifyError maps domain errors to exit codes: write failures are
// system errors, everything else is a user or data error.
func classifyError(err error, st *store.Store) *output.ExitError {
	var (
		exitErr  *output.ExitError
		writeErr *issue.WriteError
		notFound *store.NotFoundError
	)
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &writeErr):
		return output.NewSystemErrorWithCause(err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, picker.ErrCanceled):
		return output.NewUserErrorWithCause("canceled", err)
	case errors.As(err, &notFound) && notFound.Kind == store.KindPlan && st != nil:
		msg := err.Error()
		if hint := suggestPlans(st, notFound.ID); len(hint) > 0 {
			msg += "; did you mean " + strings.Join(hint, ", ") + "?"
		}
		return output.NewUserErrorWithCause(msg, err)
	default:
		return output.NewUserErrorWithCause(err.Error(), err)
	}
}

// suggestPlans returns up to maxSuggestions plan identifiers that fuzzily
// match id, best first.
func suggestPlans(st *store.Store, id string) []string {
	ids, err := st.ListPlans(context.Background())
	if err != nil || id == "" {
		return nil
	}
	var out []string
	for _, match := range fuzzy.Find(id, ids) {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, match.Str)
	}
	return out
}
