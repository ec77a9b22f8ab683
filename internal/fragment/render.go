package fragment

import (
	"fmt"
	"maps"
	"regexp"
	"strings"
)

// Policy decides what happens to a placeholder with no value in the context.
type Policy string

// Unresolved placeholder policies.
const (
	// PolicyKeep leaves the token in the output verbatim.
	PolicyKeep Policy = "keep"
	// PolicyEmpty removes the token.
	PolicyEmpty Policy = "empty"
	// PolicyError fails the render with an *UnresolvedError.
	PolicyError Policy = "error"
)

// ParsePolicy validates a policy name. An empty string selects PolicyKeep.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyKeep, nil
	case PolicyKeep, PolicyEmpty, PolicyError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown placeholder policy %q (want keep, empty or error)", s)
	}
}

// Context maps placeholder names to their values.
type Context map[string]string

// With returns a copy of c with key set to value.
func (c Context) With(key, value string) Context {
	out := maps.Clone(c)
	if out == nil {
		out = make(Context, 1)
	}
	out[key] = value
	return out
}

var placeholder = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// References reports whether tmpl contains a {{name}} token.
func References(tmpl, name string) bool {
	for _, m := range placeholder.FindAllStringSubmatch(tmpl, -1) {
		if m[1] == name {
			return true
		}
	}
	return false
}

// UnresolvedError lists placeholders that had no value under PolicyError.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return "unresolved placeholders: " + strings.Join(e.Names, ", ")
}

// Renderer substitutes {{name}} tokens.
type Renderer struct {
	policy Policy
}

// NewRenderer creates a Renderer. An unknown policy behaves as PolicyKeep.
func NewRenderer(policy Policy) *Renderer {
	if policy != PolicyEmpty && policy != PolicyError {
		policy = PolicyKeep
	}
	return &Renderer{policy: policy}
}

// Policy returns the renderer's unresolved-placeholder policy.
func (r *Renderer) Policy() Policy {
	return r.policy
}

// Render replaces every {{name}} token in tmpl in a single left-to-right
// pass. Substituted values are not scanned again.
func (r *Renderer) Render(tmpl string, ctx Context) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	out := placeholder.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := token[2 : len(token)-2]
		if val, ok := ctx[name]; ok {
			return val
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		if r.policy == PolicyEmpty {
			return ""
		}
		return token
	})

	if r.policy == PolicyError && len(missing) > 0 {
		return "", &UnresolvedError{Names: missing}
	}
	return out, nil
}

// RenderEach renders tmpl once per item with key bound to the item, and
// joins the results with newlines. No items yields "".
func (r *Renderer) RenderEach(tmpl, key string, items []string, base Context) (string, error) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line, err := r.Render(tmpl, base.With(key, item))
		if err != nil {
			return "", fmt.Errorf("rendering %s %q: %w", key, item, err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
