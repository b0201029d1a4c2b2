// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import (
	"fmt"
	"strings"
)

// Resolved is what gets persisted for a candidacy: the canonical path and
// the fields that make it up. Position is always the last path segment.
type Resolved struct {
	Path           string `json:"position_path"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory,omitempty"`
	NestedCategory string `json:"nested_category,omitempty"`
	Position       string `json:"position"`
}

// Build turns a selection into its canonical path. The shallowest position
// along the chain wins; anything selected below it is ignored.
func (t *Tree) Build(sel Selection) (Resolved, error) {
	if sel.ElectionType != t.electionType {
		return Resolved{}, invalid(FieldElectionType, string(sel.ElectionType), fmt.Sprintf("does not match %s", t.electionType))
	}
	root, ok := t.Level(sel.Level)
	if !ok {
		return Resolved{}, invalid(FieldLevel, string(sel.Level), fmt.Sprintf("is not a level of %s", t.electionType))
	}
	if sel.Category == "" {
		return Resolved{}, incomplete(FieldCategory, "is required")
	}

	prefix := []string{string(sel.ElectionType), string(sel.Level)}
	out := Resolved{Category: sel.Category}

	kind, cat, err := ClassifyKey(root, FieldCategory, sel.Category)
	if err != nil {
		return Resolved{}, err
	}
	if kind == DirectPosition {
		return out.finish(prefix, sel.Category), nil
	}

	if sel.Subcategory == "" {
		return Resolved{}, incomplete(FieldSubcategory, fmt.Sprintf("is required under %q", sel.Category))
	}
	kind, sub, err := ClassifyKey(cat, FieldSubcategory, sel.Subcategory)
	if err != nil {
		return Resolved{}, err
	}
	out.Subcategory = sel.Subcategory
	if kind == DirectPosition {
		return out.finish(prefix, sel.Category, sel.Subcategory), nil
	}

	parent := sub
	chain := []string{sel.Category, sel.Subcategory}
	if sel.NestedCategory != "" {
		kind, nested, err := ClassifyKey(sub, FieldNestedCategory, sel.NestedCategory)
		if err != nil {
			return Resolved{}, err
		}
		chain = append(chain, sel.NestedCategory)
		if kind == DirectPosition {
			return out.finish(prefix, chain...), nil
		}
		out.NestedCategory = sel.NestedCategory
		parent = nested
	}

	if sel.Position == "" {
		return Resolved{}, incomplete(FieldPosition, fmt.Sprintf("is required under %q", chain[len(chain)-1]))
	}
	kind, _, err = ClassifyKey(parent, FieldPosition, sel.Position)
	if err != nil {
		return Resolved{}, err
	}
	if kind != DirectPosition {
		return Resolved{}, invalid(FieldPosition, sel.Position, "is a nested category, not a position")
	}
	return out.finish(prefix, append(chain, sel.Position)...), nil
}

func (r Resolved) finish(prefix []string, chain ...string) Resolved {
	r.Path = strings.Join(append(prefix, chain...), Separator)
	r.Position = chain[len(chain)-1]
	return r
}

// Parse recovers the selection a stored path was built from. A path that
// does not resolve against the tree yields a *PathError and an empty
// selection; nothing is guessed.
func (t *Tree) Parse(path string) (Selection, error) {
	segs := strings.Split(path, Separator)
	fail := func(i int, reason string) (Selection, error) {
		return Selection{}, &PathError{Path: path, Segment: i, Reason: reason}
	}

	for i, s := range segs {
		if s == "" {
			return fail(i, "empty segment")
		}
	}
	if len(segs) < 3 {
		return fail(len(segs), "path must name an election type, a level and a category")
	}
	if ElectionType(segs[0]) != t.electionType {
		return fail(0, fmt.Sprintf("election type %q does not match %s", segs[0], t.electionType))
	}
	root, ok := t.Level(Level(segs[1]))
	if !ok {
		return fail(1, fmt.Sprintf("unknown level %q", segs[1]))
	}

	sel := Selection{ElectionType: t.electionType, Level: Level(segs[1])}
	rest := segs[2:]
	done := func(used int) (Selection, error) {
		if used < len(rest) {
			return fail(2+used, fmt.Sprintf("unexpected segment %q after position %q", rest[used], rest[used-1]))
		}
		return sel, nil
	}
	need := func(i int, under string) (Selection, error) {
		return fail(2+i, fmt.Sprintf("path ends at %q which is not a position", under))
	}

	cat, ok := root.Child(rest[0])
	if !ok {
		return fail(2, fmt.Sprintf("unknown category %q", rest[0]))
	}
	sel.Category = rest[0]
	if cat.IsLeaf() {
		return done(1)
	}

	if len(rest) < 2 {
		return need(1, rest[0])
	}
	sub, ok := cat.Child(rest[1])
	if !ok {
		return fail(3, fmt.Sprintf("unknown subcategory %q under %q", rest[1], rest[0]))
	}
	sel.Subcategory = rest[1]
	if sub.IsLeaf() {
		return done(2)
	}

	if len(rest) < 3 {
		return need(2, rest[1])
	}
	third, ok := sub.Child(rest[2])
	if !ok {
		return fail(4, fmt.Sprintf("unknown key %q under %q", rest[2], rest[1]))
	}
	if third.IsLeaf() {
		sel.Position = rest[2]
		return done(3)
	}
	sel.NestedCategory = rest[2]

	if len(rest) < 4 {
		return need(3, rest[2])
	}
	fourth, ok := third.Child(rest[3])
	if !ok {
		return fail(5, fmt.Sprintf("unknown position %q under %q", rest[3], rest[2]))
	}
	if !fourth.IsLeaf() {
		return fail(5, fmt.Sprintf("%q is not a position", rest[3]))
	}
	sel.Position = rest[3]
	return done(4)
}
