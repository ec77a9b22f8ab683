package store

import "gopkg.in/yaml.v3"

// Global is the data directory's base configuration: config/config.yml,
// or templates.yml at the root for older layouts.
type Global struct {
	Templates map[string]string `yaml:"templates"`
	// Modules maps module keys to display names.
	Modules map[string]string `yaml:"modules"`
}

// Module is an optional per-module layer: modules/<module>.yml.
type Module struct {
	Name      string            `yaml:"name"`
	Templates map[string]string `yaml:"templates"`
}

// Class is a class roster: classes/<class>.yml.
type Class struct {
	Name      string            `yaml:"name"`
	Students  []string          `yaml:"students"`
	Templates map[string]string `yaml:"templates"`

	hasRoster bool
}

// HasRoster reports whether the document declared a students key.
// An explicitly empty list still counts as a roster.
func (c *Class) HasRoster() bool {
	return c.hasRoster
}

// UnmarshalYAML decodes the class and records whether students was present.
func (c *Class) UnmarshalYAML(node *yaml.Node) error {
	type plain Class
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.hasRoster = hasKey(node, "students")
	return nil
}

// Plan is a scheduled module offering: plans/<class>.<module>.yml.
type Plan struct {
	LectureDates []string          `yaml:"lectureDates"`
	Teachers     []string          `yaml:"teachers"`
	Templates    map[string]string `yaml:"templates"`
}

// FirstDate returns the first lecture date as written, or "" when the plan
// has no lecture dates.
func (p *Plan) FirstDate() string {
	if len(p.LectureDates) == 0 {
		return ""
	}
	return p.LectureDates[0]
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
