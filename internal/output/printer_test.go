package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	require.NoError(t, printer.Success(map[string]any{"file": "cs101.algo1.issue.md", "weeks": 2}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result), buf.String())
	assert.Equal(t, "cs101.algo1.issue.md", result["file"])
	assert.InDelta(t, 2, result["weeks"], 0)
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewUserError(`plan "cs101.nope" not found`))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result), buf.String())
	assert.Equal(t, `plan "cs101.nope" not found`, result["error"])
	assert.InDelta(t, ExitUserError, result["code"], 0)
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	require.NoError(t, printer.Success(map[string]any{"message": "cs101.algo1.issue.md created in current directory."}))
	assert.Equal(t, "cs101.algo1.issue.md created in current directory.\n", buf.String())
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(errors.New("boom"))

	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error: boom\n", stderr.String())
}

func TestPrinter_Warn(t *testing.T) {
	t.Run("human", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		NewPrinter(&stdout, false, false).WithStderr(&stderr).Warn("skipped %d plan(s)", 2)
		assert.Equal(t, "Warning: skipped 2 plan(s)\n", stderr.String())
	})
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, true, false).Warn("skipped")
		assert.Contains(t, buf.String(), `"warning": "skipped"`)
	})
}

func TestPrinter_Stderr(t *testing.T) {
	t.Run("human", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		NewPrinter(&stdout, false, false).WithStderr(&stderr).Stderr("%d plan(s) hidden\n", 3)
		assert.Empty(t, stdout.String())
		assert.Equal(t, "3 plan(s) hidden\n", stderr.String())
	})
	t.Run("silent in json", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		NewPrinter(&stdout, true, false).WithStderr(&stderr).Stderr("hint\n")
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"PLAN", "FIRST DATE"}, [][]string{
		{"cs101.algo1", "01-03-2025"},
		{"c2.js", "15-06-2030"},
	})

	want := "PLAN         FIRST DATE\n" +
		"cs101.algo1  01-03-2025\n" +
		"c2.js        15-06-2030\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_Table_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Table(nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}

func TestPrinter_Box_Plain(t *testing.T) {
	tests := []struct {
		name, title, want string
	}{
		{"with title", "header", "header\n\n# {{className}}\n"},
		{"without title", "", "# {{className}}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, false, false).Box(tt.title, "# {{className}}")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Section("week")
	printer.KeyValue("source", "class")

	assert.Equal(t, "\nweek\n────\nsource: class\n", buf.String())
}

func TestErrorJSON(t *testing.T) {
	var result map[string]any
	require.NoError(t, json.Unmarshal(ErrorJSON("disk full", ExitSystemError), &result))
	assert.Equal(t, "disk full", result["error"])
	assert.InDelta(t, ExitSystemError, result["code"], 0)
}
