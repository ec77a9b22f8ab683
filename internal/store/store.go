package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects the subdirectory a document lives in.
type Kind string

// Document kinds.
const (
	KindGlobal Kind = "config"
	KindModule Kind = "modules"
	KindClass  Kind = "classes"
	KindPlan   Kind = "plans"
)

const (
	docExt         = ".yml"
	globalID       = "config"
	legacyTemplate = "templates.yml"
)

// Store reads YAML documents from a data directory laid out as
//
//	config/config.yml
//	modules/<module>.yml
//	classes/<class>.yml
//	plans/<class>.<module>.yml
//
// Every call reads from disk; nothing is cached.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a document of the given kind and id would be read from.
func (s *Store) Path(kind Kind, id string) string {
	return filepath.Join(s.dir, string(kind), id+docExt)
}

// Load reads and decodes the document kind/id into a new T.
// A missing, unreadable or unparsable document yields a *NotFoundError.
func Load[T any](ctx context.Context, s *Store, kind Kind, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, &NotFoundError{Kind: kind, ID: id, Err: errors.New("invalid document name")}
	}
	return decodeFile[T](s.Path(kind, id), kind, id)
}

// TryLoad is Load for optional documents: any failure yields a zero T.
func TryLoad[T any](ctx context.Context, s *Store, kind Kind, id string) *T {
	doc, err := Load[T](ctx, s, kind, id)
	if err != nil {
		return new(T)
	}
	return doc
}

// LoadGlobal reads config/config.yml, falling back to templates.yml at the
// root of the data directory.
func (s *Store) LoadGlobal(ctx context.Context) (*Global, error) {
	doc, err := Load[Global](ctx, s, KindGlobal, globalID)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return doc, err
	}
	legacy, legacyErr := decodeFile[Global](filepath.Join(s.dir, legacyTemplate), KindGlobal, globalID)
	if legacyErr != nil {
		// Report the primary location; the fallback is a compatibility path.
		return nil, err
	}
	return legacy, nil
}

// LoadClass reads classes/<key>.yml.
func (s *Store) LoadClass(ctx context.Context, key string) (*Class, error) {
	return Load[Class](ctx, s, KindClass, key)
}

// LoadPlan reads plans/<id>.yml.
func (s *Store) LoadPlan(ctx context.Context, id string) (*Plan, error) {
	return Load[Plan](ctx, s, KindPlan, id)
}

// TryLoadModule reads modules/<key>.yml, returning an empty Module when the
// document is absent or broken.
func (s *Store) TryLoadModule(ctx context.Context, key string) *Module {
	return TryLoad[Module](ctx, s, KindModule, key)
}

// ListPlans returns the identifiers of every plan document in directory
// order. A missing plans directory is not an error.
func (s *Store) ListPlans(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.dir, string(KindPlan)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != docExt || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, docExt))
	}
	return ids, nil
}

func decodeFile[T any](path string, kind Kind, id string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Kind: kind, ID: id, Path: path, Err: err}
	}
	doc := new(T)
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &NotFoundError{Kind: kind, ID: id, Path: path, Err: fmt.Errorf("parse: %w", err)}
	}
	return doc, nil
}
