// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed trees/*.json
var embedded embed.FS

// stepCacheSize bounds the memoized resolver steps.
const stepCacheSize = 2048

// Catalog holds one tree per election type.
type Catalog struct {
	trees map[ElectionType]*Tree
	order []ElectionType
	steps *lru.Cache[Selection, resolved]
}

type resolved struct {
	step Step
	sel  Selection
}

// NewCatalog builds a catalog from trees. A later tree for the same
// election type replaces an earlier one.
func NewCatalog(trees ...*Tree) (*Catalog, error) {
	steps, err := lru.New[Selection, resolved](stepCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create step cache: %w", err)
	}
	c := &Catalog{trees: make(map[ElectionType]*Tree), steps: steps}
	for _, t := range trees {
		if _, ok := c.trees[t.electionType]; !ok {
			c.order = append(c.order, t.electionType)
		}
		c.trees[t.electionType] = t
	}
	return c, nil
}

// DefaultCatalog loads the trees shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	trees, err := loadFS(embedded, "trees")
	if err != nil {
		return nil, err
	}
	return NewCatalog(trees...)
}

// LoadCatalog loads the shipped trees and then overlays any
// <election_type>.json, .yaml or .yml files found in dir. An empty dir
// means no overrides.
func LoadCatalog(dir string) (*Catalog, error) {
	trees, err := loadFS(embedded, "trees")
	if err != nil {
		return nil, err
	}
	if dir != "" {
		extra, err := loadFS(os.DirFS(dir), ".")
		if err != nil {
			return nil, err
		}
		trees = append(trees, extra...)
	}
	return NewCatalog(trees...)
}

func loadFS(fsys fs.FS, dir string) ([]*Tree, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree directory: %w", err)
	}

	var trees []*Tree
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		var parse func(ElectionType, []byte) (*Tree, error)
		switch ext {
		case ".json":
			parse = ParseTreeJSON
		case ".yaml", ".yml":
			parse = ParseTreeYAML
		default:
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		et := ElectionType(strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name))))
		t, err := parse(et, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// ElectionTypes returns the election types in load order.
func (c *Catalog) ElectionTypes() []ElectionType {
	out := make([]ElectionType, len(c.order))
	copy(out, c.order)
	return out
}

// Tree returns the tree of an election type.
func (c *Catalog) Tree(et ElectionType) (*Tree, error) {
	t, ok := c.trees[et]
	if !ok {
		return nil, invalid(FieldElectionType, string(et), "is not a known election type")
	}
	return t, nil
}

// Levels returns the levels of an election type in document order.
func (c *Catalog) Levels(et ElectionType) ([]Level, error) {
	t, err := c.Tree(et)
	if err != nil {
		return nil, err
	}
	return t.Levels(), nil
}

// Resolver starts a form session for an election type and level.
func (c *Catalog) Resolver(et ElectionType, level Level) (*Resolver, error) {
	t, err := c.Tree(et)
	if err != nil {
		return nil, err
	}
	return NewResolver(t, level)
}

// Step replays sel through a fresh Resolver, upstream field first, and
// returns the resulting step together with the selection as the resolver
// left it (auto-selected position included).
func (c *Catalog) Step(sel Selection) (Step, Selection, error) {
	key := stepKey(sel)
	if hit, ok := c.steps.Get(key); ok {
		return cloneStep(hit.step), hit.sel, nil
	}

	r, err := c.Resolver(sel.ElectionType, sel.Level)
	if err != nil {
		return Step{}, Selection{}, err
	}
	for _, f := range selectable {
		if err := r.Set(f, sel.Get(f)); err != nil {
			return Step{}, Selection{}, err
		}
	}

	out := resolved{step: r.Step(), sel: r.Selection()}
	c.steps.Add(key, out)
	return cloneStep(out.step), out.sel, nil
}

// Build resolves sel against the tree of its election type.
func (c *Catalog) Build(sel Selection) (Resolved, error) {
	t, err := c.Tree(sel.ElectionType)
	if err != nil {
		return Resolved{}, err
	}
	return t.Build(sel)
}

// Parse recovers a selection from a stored path, picking the tree by the
// path's first segment.
func (c *Catalog) Parse(positionPath string) (Selection, error) {
	et, _, _ := strings.Cut(positionPath, Separator)
	t, ok := c.trees[ElectionType(et)]
	if !ok {
		return Selection{}, &PathError{Path: positionPath, Segment: 0, Reason: fmt.Sprintf("unknown election type %q", et)}
	}
	return t.Parse(positionPath)
}

// stepKey drops the lock marker: it is an output of the replay, not an input.
func stepKey(sel Selection) Selection {
	sel.PositionLocked = false
	return sel
}

func cloneStep(s Step) Step {
	s.Positions = append([]string{}, s.Positions...)
	s.Nested = append([]string{}, s.Nested...)
	return s
}
