package issue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/remarcmij/hyf-plan/internal/fragment"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// DefaultTeachersFallback is the teachers text for plans without teachers.
const DefaultTeachersFallback = "To be announced"

// FileSuffix is appended to the plan identifier to name the output file.
const FileSuffix = ".issue.md"

// Options configures a Generator.
type Options struct {
	// OutDir receives the issue file. Empty means the working directory.
	OutDir string
	// Policy handles placeholders with no value.
	Policy fragment.Policy
	// TeachersFallback replaces the teacher list when a plan names no
	// teachers. It may be empty.
	TeachersFallback string
}

// Issue is a rendered document and the data it was built from.
type Issue struct {
	ID         string
	ClassKey   string
	ModuleKey  string
	ClassName  string
	ModuleName string
	Weeks      int
	Content    string
	Fragments  fragment.Resolved
}

// Result describes a written issue file.
type Result struct {
	*Issue
	Path string
}

// Generator builds issues from a store.
type Generator struct {
	store    *store.Store
	renderer *fragment.Renderer
	opts     Options
}

// NewGenerator creates a Generator reading from s.
func NewGenerator(s *store.Store, opts Options) *Generator {
	return &Generator{
		store:    s,
		renderer: fragment.NewRenderer(opts.Policy),
		opts:     opts,
	}
}

// SplitIdentifier splits "<class>.<module>" at the first dot.
func SplitIdentifier(id string) (classKey, moduleKey string, err error) {
	classKey, moduleKey, ok := strings.Cut(id, ".")
	if !ok || classKey == "" || moduleKey == "" {
		return "", "", &MalformedIdentifierError{ID: id}
	}
	return classKey, moduleKey, nil
}

// Path returns the file an issue for id is written to.
func (g *Generator) Path(id string) string {
	return filepath.Join(g.opts.OutDir, id+FileSuffix)
}

// Generate builds the issue for id and writes it. Nothing is written when
// any step fails.
func (g *Generator) Generate(ctx context.Context, id string) (*Result, error) {
	iss, err := g.Build(ctx, id)
	if err != nil {
		return nil, err
	}
	path := g.Path(id)
	if err := atomicWrite(path, []byte(iss.Content)); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	return &Result{Issue: iss, Path: path}, nil
}

type layers struct {
	global *store.Global
	module *store.Module
	class  *store.Class
	plan   *store.Plan
}

// Build renders the issue for id without writing it.
func (g *Generator) Build(ctx context.Context, id string) (*Issue, error) {
	classKey, moduleKey, err := SplitIdentifier(id)
	if err != nil {
		return nil, err
	}

	docs, err := g.load(ctx, id, classKey, moduleKey)
	if err != nil {
		return nil, err
	}
	if len(docs.plan.LectureDates) == 0 {
		return nil, &EmptyScheduleError{PlanID: id}
	}
	if !docs.class.HasRoster() {
		return nil, &MissingRosterError{ClassKey: classKey}
	}

	builtin, err := fragment.BuiltinLayer()
	if err != nil {
		return nil, err
	}
	resolved := fragment.Merge(
		builtin,
		fragment.Layer{Name: fragment.LayerGlobal, Templates: docs.global.Templates},
		fragment.Layer{Name: fragment.LayerModule, Templates: docs.module.Templates},
		fragment.Layer{Name: fragment.LayerClass, Templates: docs.class.Templates},
		fragment.Layer{Name: fragment.LayerPlan, Templates: docs.plan.Templates},
	)

	iss := &Issue{
		ID:         id,
		ClassKey:   classKey,
		ModuleKey:  moduleKey,
		ClassName:  firstNonEmpty(docs.class.Name, classKey),
		ModuleName: firstNonEmpty(docs.module.Name, docs.global.Modules[moduleKey], moduleKey),
		Weeks:      len(docs.plan.LectureDates),
		Fragments:  resolved,
	}

	content, err := g.render(iss, docs, resolved)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", id, err)
	}
	iss.Content = content
	return iss, nil
}

// load reads the four layers concurrently. The module layer is optional
// and never fails the group.
func (g *Generator) load(ctx context.Context, id, classKey, moduleKey string) (*layers, error) {
	var docs layers
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		docs.global, err = g.store.LoadGlobal(ctx)
		return err
	})
	eg.Go(func() error {
		docs.module = g.store.TryLoadModule(ctx, moduleKey)
		return nil
	})
	eg.Go(func() (err error) {
		docs.class, err = g.store.LoadClass(ctx, classKey)
		return err
	})
	eg.Go(func() (err error) {
		docs.plan, err = g.store.LoadPlan(ctx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &docs, nil
}

func (g *Generator) render(iss *Issue, docs *layers, resolved fragment.Resolved) (string, error) {
	set := resolved.Set()
	base := baseContext(iss, docs.plan)

	teachers := g.opts.TeachersFallback
	if len(docs.plan.Teachers) > 0 {
		var err error
		if teachers, err = g.renderer.RenderEach(set["teacher"], "teacher", docs.plan.Teachers, base); err != nil {
			return "", err
		}
	}
	students, err := g.renderer.RenderEach(set["student"], "student", docs.class.Students, base)
	if err != nil {
		return "", err
	}
	base["teachers"] = teachers
	base["students"] = students

	base["preamble"] = ""
	if tmpl, ok := set["preamble"]; ok {
		if base["preamble"], err = g.renderer.Render(tmpl, base); err != nil {
			return "", fmt.Errorf("preamble: %w", err)
		}
	}

	header, err := g.renderer.Render(set["header"], base)
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	var blocks []string
	// A header that does not place the preamble itself gets it on top.
	if base["preamble"] != "" && !fragment.References(set["header"], "preamble") {
		blocks = append(blocks, base["preamble"])
	}
	blocks = append(blocks, header)

	for i, date := range docs.plan.LectureDates {
		ctx := base.With("weekNum", strconv.Itoa(i+1)).With("lectureDate", date)
		week, err := g.renderer.Render(set["week"], ctx)
		if err != nil {
			return "", fmt.Errorf("week %d: %w", i+1, err)
		}
		blocks = append(blocks, week)
	}

	if tmpl, ok := set["footer"]; ok {
		footer, err := g.renderer.Render(tmpl, base)
		if err != nil {
			return "", fmt.Errorf("footer: %w", err)
		}
		if footer != "" {
			blocks = append(blocks, footer)
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}

// baseContext holds the placeholders available to every fragment.
func baseContext(iss *Issue, plan *store.Plan) fragment.Context {
	dates := plan.LectureDates
	ctx := fragment.Context{
		"planId":       iss.ID,
		"classKey":     iss.ClassKey,
		"moduleKey":    iss.ModuleKey,
		"className":    iss.ClassName,
		"moduleName":   iss.ModuleName,
		"lectureCount": strconv.Itoa(len(dates)),
		"firstDate":    dates[0],
		"lastDate":     dates[len(dates)-1],
	}
	for i, date := range dates {
		ctx["dateWeek"+strconv.Itoa(i+1)] = date
	}
	return ctx
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// atomicWrite writes data to a temp file beside path and renames it into place.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.issue.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
