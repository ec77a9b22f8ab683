package fragment

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Builtin describes an embedded default fragment.
type Builtin struct {
	Name        string
	Description string `yaml:"description"`
	Text        string `yaml:"-"`
}

// Builtins returns the embedded default fragments, sorted by name.
func Builtins() ([]Builtin, error) {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("reading built-in fragments: %w", err)
	}

	var out []Builtin
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := builtinFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading built-in fragment %s: %w", entry.Name(), err)
		}
		b, err := parseBuiltin(string(data))
		if err != nil {
			return nil, fmt.Errorf("built-in fragment %s: %w", entry.Name(), err)
		}
		b.Name = strings.TrimSuffix(entry.Name(), ".md")
		out = append(out, b)
	}
	return out, nil
}

// BuiltinLayer returns the embedded fragments as the weakest merge layer.
func BuiltinLayer() (Layer, error) {
	builtins, err := Builtins()
	if err != nil {
		return Layer{}, err
	}
	templates := make(map[string]string, len(builtins))
	for _, b := range builtins {
		templates[b.Name] = b.Text
	}
	return Layer{Name: LayerBuiltin, Templates: templates}, nil
}

// parseBuiltin reads optional YAML frontmatter delimited by --- lines.
// The fragment text is everything after the closing delimiter, without the
// surrounding blank lines.
func parseBuiltin(raw string) (Builtin, error) {
	var b Builtin
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		b.Text = raw
		return b, nil
	}
	front, body, ok := strings.Cut(raw[3:], "\n---")
	if !ok {
		b.Text = raw
		return b, nil
	}
	if err := yaml.Unmarshal([]byte(front), &b); err != nil {
		return b, fmt.Errorf("invalid frontmatter: %w", err)
	}
	b.Text = strings.TrimSpace(body)
	return b, nil
}
