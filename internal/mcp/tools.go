package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// --- Upcoming tool ---

// UpcomingInput is the input for the upcoming tool.
type UpcomingInput struct {
	All bool `json:"all,omitempty" jsonschema:"include plans that already started"`
}

// PlanRef identifies a plan and its first lecture date.
type PlanRef struct {
	ID        string `json:"id"         jsonschema:"plan identifier <class>.<module>"`
	FirstDate string `json:"first_date" jsonschema:"first lecture date (DD-MM-YYYY)"`
	Label     string `json:"label"      jsonschema:"picker label: id and first date"`
}

// UpcomingOutput is the output for the upcoming tool.
type UpcomingOutput struct {
	Count   int       `json:"count"             jsonschema:"number of plans returned"`
	Plans   []PlanRef `json:"plans"             jsonschema:"plans ordered by first lecture date"`
	Skipped int       `json:"skipped,omitempty" jsonschema:"plan files skipped as malformed"`
}

func handleUpcoming(deps Deps) mcp.ToolHandlerFor[UpcomingInput, UpcomingOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpcomingInput) (*mcp.CallToolResult, UpcomingOutput, error) {
		enum := deps.enumerator()
		list := enum.Upcoming
		if input.All {
			list = enum.All
		}
		choices, stats, err := list(ctx)
		if err != nil {
			return nil, UpcomingOutput{}, err
		}

		out := UpcomingOutput{
			Count:   len(choices),
			Plans:   make([]PlanRef, 0, len(choices)),
			Skipped: stats.Skipped(),
		}
		for _, c := range choices {
			out.Plans = append(out.Plans, PlanRef{ID: c.ID, FirstDate: c.FirstDate, Label: c.Label()})
		}
		return nil, out, nil
	}
}

// --- Fragments tool ---

// PlanInput names a plan.
type PlanInput struct {
	PlanID string `json:"plan_id" jsonschema:"plan identifier <class>.<module>, e.g. cs101.algo1"`
}

// FragmentRef is one effective fragment.
type FragmentRef struct {
	Name       string   `json:"name"                 jsonschema:"fragment name"`
	Source     string   `json:"source"               jsonschema:"layer that supplied the fragment"`
	Overridden []string `json:"overridden,omitempty" jsonschema:"weaker layers that also declared it"`
	Text       string   `json:"text"                 jsonschema:"template text"`
}

// FragmentsOutput is the output for the fragments tool.
type FragmentsOutput struct {
	PlanID    string        `json:"plan_id"   jsonschema:"plan identifier"`
	Fragments []FragmentRef `json:"fragments" jsonschema:"effective fragments sorted by name"`
}

func handleFragments(deps Deps) mcp.ToolHandlerFor[PlanInput, FragmentsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlanInput) (*mcp.CallToolResult, FragmentsOutput, error) {
		if input.PlanID == "" {
			return nil, FragmentsOutput{}, errors.New("plan_id is required")
		}
		iss, err := deps.generator().Build(ctx, input.PlanID)
		if err != nil {
			return nil, FragmentsOutput{}, err
		}

		out := FragmentsOutput{PlanID: iss.ID}
		for _, name := range iss.Fragments.Names() {
			text, _ := iss.Fragments.Lookup(name)
			out.Fragments = append(out.Fragments, FragmentRef{
				Name:       name,
				Source:     iss.Fragments.Source(name),
				Overridden: iss.Fragments.Overridden(name),
				Text:       text,
			})
		}
		return nil, out, nil
	}
}

// --- Generate tool ---

// GenerateInput is the input for the generate tool.
type GenerateInput struct {
	PlanID string `json:"plan_id"           jsonschema:"plan identifier <class>.<module>, e.g. cs101.algo1"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"render without writing the file"`
}

// GenerateOutput is the output for the generate tool.
type GenerateOutput struct {
	PlanID  string `json:"plan_id"        jsonschema:"plan identifier"`
	Path    string `json:"path,omitempty" jsonschema:"written file (empty on dry run)"`
	Weeks   int    `json:"weeks"          jsonschema:"number of week blocks"`
	Content string `json:"content"        jsonschema:"rendered Markdown"`
}

func handleGenerate(deps Deps) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		if input.PlanID == "" {
			return nil, GenerateOutput{}, errors.New("plan_id is required")
		}
		gen := deps.generator()

		if input.DryRun {
			iss, err := gen.Build(ctx, input.PlanID)
			if err != nil {
				return nil, GenerateOutput{}, err
			}
			return nil, GenerateOutput{PlanID: iss.ID, Weeks: iss.Weeks, Content: iss.Content}, nil
		}

		res, err := gen.Generate(ctx, input.PlanID)
		if err != nil {
			return nil, GenerateOutput{}, err
		}
		return nil, GenerateOutput{PlanID: res.ID, Path: res.Path, Weeks: res.Weeks, Content: res.Content}, nil
	}
}
