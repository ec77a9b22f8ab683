package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "plans/cs101.algo1.yml", `
lectureDates: ["01-03-2025", "08-03-2025"]
teachers: [Ann]
templates:
  footer: END
`)
	s := New(dir)

	plan, err := s.LoadPlan(context.Background(), "cs101.algo1")
	require.NoError(t, err)
	assert.Equal(t, []string{"01-03-2025", "08-03-2025"}, plan.LectureDates)
	assert.Equal(t, []string{"Ann"}, plan.Teachers)
	assert.Equal(t, map[string]string{"footer": "END"}, plan.Templates)
	assert.Equal(t, "01-03-2025", plan.FirstDate())
}

func TestLoad_Missing(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.LoadPlan(context.Background(), "cs101.nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindPlan, nf.Kind)
	assert.Equal(t, "cs101.nope", nf.ID)
	assert.Contains(t, err.Error(), `plan "cs101.nope" not found`)
}

func TestLoad_Unparsable(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "classes/cs101.yml", "name: [unclosed\n")

	_, err := New(dir).LoadClass(context.Background(), "cs101")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "could not be read")
}

func TestLoad_RejectsPathNames(t *testing.T) {
	s := New(t.TempDir())
	for _, id := range []string{"", "..", "../etc/passwd", `a\b`} {
		_, err := Load[Plan](context.Background(), s, KindPlan, id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "plans/a.b.yml", "lectureDates: [01-01-2030]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(dir).LoadPlan(ctx, "a.b")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassRoster(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantRoster bool
		wantCount  int
	}{
		{"listed", "name: CS101\nstudents: [Ann, Bo]\n", true, 2},
		{"explicitly empty", "name: CS101\nstudents: []\n", true, 0},
		{"null", "name: CS101\nstudents:\n", true, 0},
		{"absent", "name: CS101\n", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeDoc(t, dir, "classes/cs101.yml", tt.content)

			class, err := New(dir).LoadClass(context.Background(), "cs101")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoster, class.HasRoster())
			assert.Len(t, class.Students, tt.wantCount)
			assert.Equal(t, "CS101", class.Name)
		})
	}
}

func TestTryLoadModule(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "modules/algo1.yml", "name: Algorithms\ntemplates:\n  week: W\n")
	writeDoc(t, dir, "modules/broken.yml", ":\n  - [")
	s := New(dir)
	ctx := context.Background()

	mod := s.TryLoadModule(ctx, "algo1")
	assert.Equal(t, "Algorithms", mod.Name)
	assert.Equal(t, "W", mod.Templates["week"])

	for _, key := range []string{"missing", "broken"} {
		mod := s.TryLoadModule(ctx, key)
		require.NotNil(t, mod, key)
		assert.Empty(t, mod.Name, key)
		assert.Nil(t, mod.Templates, key)
	}
}

func TestLoadGlobal(t *testing.T) {
	t.Run("config dir", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "config/config.yml", "templates:\n  header: H\nmodules:\n  algo1: Algorithms\n")
		writeDoc(t, dir, "templates.yml", "templates:\n  header: legacy\n")

		global, err := New(dir).LoadGlobal(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "H", global.Templates["header"])
		assert.Equal(t, "Algorithms", global.Modules["algo1"])
	})

	t.Run("legacy fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "templates.yml", "templates:\n  header: legacy\n")

		global, err := New(dir).LoadGlobal(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "legacy", global.Templates["header"])
	})

	t.Run("missing", func(t *testing.T) {
		_, err := New(t.TempDir()).LoadGlobal(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "global config")
	})

	t.Run("broken primary does not fall back", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "config/config.yml", "templates: [")
		writeDoc(t, dir, "templates.yml", "templates:\n  header: legacy\n")

		_, err := New(dir).LoadGlobal(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestListPlans(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "plans/c2.js.yml", "lectureDates: []\n")
	writeDoc(t, dir, "plans/c1.html.yml", "lectureDates: []\n")
	writeDoc(t, dir, "plans/notes.txt", "ignored")
	writeDoc(t, dir, "plans/.hidden.yml", "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plans", "archive.yml"), 0o755))

	ids, err := New(dir).ListPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1.html", "c2.js"}, ids)
}

func TestListPlans_NoDirectory(t *testing.T) {
	ids, err := New(t.TempDir()).ListPlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
