package fragment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ReplacesEveryOccurrence(t *testing.T) {
	r := NewRenderer(PolicyKeep)
	for k := 0; k <= 5; k++ {
		tmpl := strings.Repeat("[{{name}}]", k)
		got, err := r.Render(tmpl, Context{"name": "Ann"})
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("[Ann]", k), got)
		assert.Equal(t, k, strings.Count(got, "Ann"))
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := NewRenderer(PolicyKeep)
	tmpl := "# {{className}} {{moduleName}} {{className}}"
	ctx := Context{"className": "CS101", "moduleName": "Algorithms"}

	first, err := r.Render(tmpl, ctx)
	require.NoError(t, err)
	second, err := r.Render(tmpl, ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "# CS101 Algorithms CS101", first)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	got, err := NewRenderer(PolicyKeep).Render("{{a}}{{b}}", Context{"a": "{{b}}", "b": "x"})
	require.NoError(t, err)
	assert.Equal(t, "{{b}}x", got)
}

func TestRender_Policies(t *testing.T) {
	tmpl := "{{known}} {{unknown}} {{unknown}} {{other}}"
	ctx := Context{"known": "k"}

	t.Run("keep", func(t *testing.T) {
		got, err := NewRenderer(PolicyKeep).Render(tmpl, ctx)
		require.NoError(t, err)
		assert.Equal(t, "k {{unknown}} {{unknown}} {{other}}", got)
	})
	t.Run("empty", func(t *testing.T) {
		got, err := NewRenderer(PolicyEmpty).Render(tmpl, ctx)
		require.NoError(t, err)
		assert.Equal(t, "k   ", got)
	})
	t.Run("error", func(t *testing.T) {
		_, err := NewRenderer(PolicyError).Render(tmpl, ctx)
		var unresolved *UnresolvedError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, []string{"unknown", "other"}, unresolved.Names)
		assert.EqualError(t, err, "unresolved placeholders: unknown, other")
	})
	t.Run("unknown policy keeps", func(t *testing.T) {
		r := NewRenderer(Policy("bogus"))
		assert.Equal(t, PolicyKeep, r.Policy())
	})
}

func TestRender_NonPlaceholderBracesUntouched(t *testing.T) {
	tmpl := "{{ spaced }} {single} {{}} {{1abc}}"
	got, err := NewRenderer(PolicyError).Render(tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, tmpl, got)
}

func TestRenderEach(t *testing.T) {
	r := NewRenderer(PolicyKeep)
	base := Context{"className": "CS101"}

	got, err := r.RenderEach("- {{student}} ({{className}})", "student", []string{"Ann", "Bo"}, base)
	require.NoError(t, err)
	assert.Equal(t, "- Ann (CS101)\n- Bo (CS101)", got)
	assert.NotContains(t, base, "student")

	empty, err := r.RenderEach("- {{student}}", "student", nil, base)
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestRenderEach_Error(t *testing.T) {
	_, err := NewRenderer(PolicyError).RenderEach("- {{teacher}} {{missing}}", "teacher", []string{"Ann"}, nil)
	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Contains(t, err.Error(), `teacher "Ann"`)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyKeep, false},
		{"keep", PolicyKeep, false},
		{"EMPTY", PolicyEmpty, false},
		{" error ", PolicyError, false},
		{"strict", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextWith(t *testing.T) {
	var nilCtx Context
	got := nilCtx.With("a", "1")
	assert.Equal(t, Context{"a": "1"}, got)

	base := Context{"a": "1"}
	next := base.With("b", "2")
	assert.Equal(t, Context{"a": "1"}, base)
	assert.Equal(t, Context{"a": "1", "b": "2"}, next)
}

func TestReferences(t *testing.T) {
	tests := []struct {
		tmpl string
		want bool
	}{
		{"{{preamble}}\n# {{className}}", true},
		{"# {{className}}", false},
		{"{{preambleText}}", false},
		{"{{ preamble }}", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, References(tt.tmpl, "preamble"), tt.tmpl)
	}
}
