package fragment

import (
	"maps"
	"slices"
)

// Layer names, weakest first.
const (
	LayerBuiltin = "built-in"
	LayerGlobal  = "global"
	LayerModule  = "module"
	LayerClass   = "class"
	LayerPlan    = "plan"
)

// Set maps fragment names to template text.
type Set map[string]string

// Layer is one source of fragments. A nil Templates map contributes nothing.
type Layer struct {
	Name      string
	Templates map[string]string
}

// Resolved is the outcome of Merge: the effective fragments plus the layer
// each one came from.
type Resolved struct {
	set      Set
	sources  map[string]string
	shadowed map[string][]string
}

// Merge overlays layers in order; for each fragment name the last layer
// that declares it wins. The inputs are not modified.
func Merge(layers ...Layer) Resolved {
	r := Resolved{
		set:      make(Set),
		sources:  make(map[string]string),
		shadowed: make(map[string][]string),
	}
	for _, layer := range layers {
		for name, text := range layer.Templates {
			if prev, ok := r.sources[name]; ok {
				r.shadowed[name] = append(r.shadowed[name], prev)
			}
			r.set[name] = text
			r.sources[name] = layer.Name
		}
	}
	return r
}

// Set returns a copy of the effective fragments.
func (r Resolved) Set() Set {
	return maps.Clone(r.set)
}

// Lookup returns the effective text of a fragment.
func (r Resolved) Lookup(name string) (string, bool) {
	text, ok := r.set[name]
	return text, ok
}

// Source names the layer that supplied fragment name, or "" if none did.
func (r Resolved) Source(name string) string {
	return r.sources[name]
}

// Overridden lists the layers whose version of name was replaced, weakest first.
func (r Resolved) Overridden(name string) []string {
	return slices.Clone(r.shadowed[name])
}

// Names returns the effective fragment names in sorted order.
func (r Resolved) Names() []string {
	return slices.Sorted(maps.Keys(r.set))
}
