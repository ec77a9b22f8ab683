// Package schedule lists plan documents by their first lecture date.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/remarcmij/hyf-plan/internal/store"
)

// DateLayout is the DD-MM-YYYY form lecture dates are written in. Day and
// month may drop their leading zero: 1-3-2030 and 01-03-2030 are the same date.
const DateLayout = "2-1-2006"

const maxConcurrentReads = 16

// Choice is a plan offered for generation.
type Choice struct {
	ID        string    `json:"id"`
	FirstDate string    `json:"firstDate"`
	Start     time.Time `json:"-"`
}

// Label renders the choice as "<id> <firstDate>".
func (c Choice) Label() string {
	return c.ID + " " + c.FirstDate
}

// IDFromLabel returns the plan identifier from a label made by Label.
func IDFromLabel(label string) string {
	id, _, _ := strings.Cut(label, " ")
	return id
}

// ScanStats counts what happened to each plan file during a scan.
type ScanStats struct {
	Total      int `json:"total"`
	Listed     int `json:"listed"`
	Past       int `json:"past"`
	NoDates    int `json:"noDates"`
	BadDate    int `json:"badDate"`
	Unreadable int `json:"unreadable"`
}

// Skipped is the number of plans left out for being malformed.
func (s *ScanStats) Skipped() int {
	return s.NoDates + s.BadDate + s.Unreadable
}

// Enumerator scans the plans in a store.
type Enumerator struct {
	store *store.Store
	now   func() time.Time
}

// NewEnumerator creates an Enumerator. A nil now uses time.Now.
func NewEnumerator(s *store.Store, now func() time.Time) *Enumerator {
	if now == nil {
		now = time.Now
	}
	return &Enumerator{store: s, now: now}
}

// Upcoming returns the plans whose first lecture date is strictly after
// now, earliest first. Plans sharing a date keep directory order.
func (e *Enumerator) Upcoming(ctx context.Context) ([]Choice, *ScanStats, error) {
	now := e.now()
	return e.scan(ctx, now.Location(), func(start time.Time) bool {
		return start.After(now)
	})
}

// All returns every plan with a parseable first lecture date, earliest first.
func (e *Enumerator) All(ctx context.Context) ([]Choice, *ScanStats, error) {
	return e.scan(ctx, e.now().Location(), func(time.Time) bool { return true })
}

type planResult struct {
	choice Choice
	status status
}

type status int

const (
	statusListed status = iota
	statusPast
	statusNoDates
	statusBadDate
	statusUnreadable
)

func (e *Enumerator) scan(ctx context.Context, loc *time.Location, keep func(time.Time) bool) ([]Choice, *ScanStats, error) {
	ids, err := e.store.ListPlans(ctx)
	if err != nil {
		return nil, nil, err
	}

	results := make([]planResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, id := range ids {
		g.Go(func() error {
			plan, err := e.store.LoadPlan(gctx, id)
			switch {
			case errors.Is(err, store.ErrNotFound):
				results[i] = planResult{status: statusUnreadable}
				return nil
			case err != nil:
				return err
			}
			results[i] = classify(id, plan, loc, keep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("scanning plans: %w", err)
	}

	stats := &ScanStats{Total: len(ids)}
	choices := make([]Choice, 0, len(ids))
	for _, r := range results {
		switch r.status {
		case statusListed:
			stats.Listed++
			choices = append(choices, r.choice)
		case statusPast:
			stats.Past++
		case statusNoDates:
			stats.NoDates++
		case statusBadDate:
			stats.BadDate++
		case statusUnreadable:
			stats.Unreadable++
		}
	}

	slices.SortStableFunc(choices, func(a, b Choice) int {
		return a.Start.Compare(b.Start)
	})
	return choices, stats, nil
}

func classify(id string, plan *store.Plan, loc *time.Location, keep func(time.Time) bool) planResult {
	raw := plan.FirstDate()
	if raw == "" {
		return planResult{status: statusNoDates}
	}
	start, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return planResult{status: statusBadDate}
	}
	if !keep(start) {
		return planResult{status: statusPast}
	}
	return planResult{
		choice: Choice{ID: id, FirstDate: raw, Start: start},
		status: statusListed,
	}
}
