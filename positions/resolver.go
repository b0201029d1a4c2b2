// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import "fmt"

// State is where a selection stands on its way to a position.
type State int

const (
	NoCategory State = iota
	CategorySelected
	SubcategorySelected
	NestedCategorySelected
	PositionSelected
	// Terminal: a category, subcategory or nested category is itself
	// a position.
	Terminal
)

var stateNames = map[State]string{
	NoCategory:             "NO_CATEGORY",
	CategorySelected:       "CATEGORY_SELECTED",
	SubcategorySelected:    "SUBCATEGORY_SELECTED",
	NestedCategorySelected: "NESTED_CATEGORY_SELECTED",
	PositionSelected:       "POSITION_SELECTED",
	Terminal:               "TERMINAL",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for k, name := range stateNames {
		if name == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Step describes the node the current choice is made from.
//
// Keys in Positions are written to PositionField, keys in Nested to
// NestedField. At the category and subcategory depth both fields are the
// same; below that direct positions fill the position field and nested keys
// the nested category field.
type Step struct {
	State         State    `json:"state"`
	Kind          Kind     `json:"kind"`
	PositionField Field    `json:"position_field"`
	NestedField   Field    `json:"nested_field,omitempty"`
	Positions     []string `json:"positions"`
	Nested        []string `json:"nested"`

	// TerminalField is the field holding the position once complete.
	TerminalField Field `json:"terminal_field,omitempty"`
}

// Complete reports whether the selection reaches a position.
func (s Step) Complete() bool {
	return s.State == Terminal || s.State == PositionSelected
}

func newStep(state State, n *Node, positionField, nestedField Field) Step {
	direct, nested := split(n)
	return Step{
		State:         state,
		Kind:          Classify(n),
		PositionField: positionField,
		NestedField:   nestedField,
		Positions:     direct,
		Nested:        nested,
	}
}

// Resolver drives a Selection one choice at a time against a level's tree.
// A Resolver belongs to a single form session and is not safe for
// concurrent use.
type Resolver struct {
	root *Node
	sel  Selection
}

// NewResolver starts an empty selection for the given level.
func NewResolver(t *Tree, level Level) (*Resolver, error) {
	root, ok := t.Level(level)
	if !ok {
		return nil, invalid(FieldLevel, string(level), fmt.Sprintf("is not a level of %s", t.ElectionType()))
	}
	return &Resolver{
		root: root,
		sel:  Selection{ElectionType: t.ElectionType(), Level: level},
	}, nil
}

// Selection returns a copy of the current selection.
func (r *Resolver) Selection() Selection {
	return r.sel
}

func (r *Resolver) SelectCategory(key string) error {
	return r.Set(FieldCategory, key)
}

func (r *Resolver) SelectSubcategory(key string) error {
	return r.Set(FieldSubcategory, key)
}

func (r *Resolver) SelectNestedCategory(key string) error {
	return r.Set(FieldNestedCategory, key)
}

func (r *Resolver) SelectPosition(key string) error {
	return r.Set(FieldPosition, key)
}

// Set writes key into field f. A change resets every field downstream of f.
// An empty key clears f. On error the selection is left unchanged.
func (r *Resolver) Set(f Field, key string) error {
	if !isSelectable(f) {
		return invalid(f, key, "cannot be selected")
	}
	if key == "" {
		r.Clear(f)
		return nil
	}
	if r.sel.Get(f) == key {
		return nil
	}
	if f == FieldPosition && r.sel.PositionLocked {
		return invalid(f, key, fmt.Sprintf("is locked to %q", r.sel.Position))
	}

	n, err := r.parentOf(f)
	if err != nil {
		return err
	}
	_, child, err := ClassifyKey(n, f, key)
	if err != nil {
		return err
	}
	switch {
	case f == FieldNestedCategory && child.IsLeaf():
		return invalid(f, key, "is a position, not a nested category")
	case f == FieldPosition && !child.IsLeaf():
		return invalid(f, key, "is a nested category, not a position")
	}

	r.sel.clearFrom(f)
	r.sel.set(f, key)
	r.autoSelect()
	return nil
}

// Clear empties f and every field downstream of it.
func (r *Resolver) Clear(f Field) {
	if !isSelectable(f) {
		return
	}
	r.sel.clearFrom(f)
	r.autoSelect()
}

// parentOf returns the node whose children are the options for f, given
// the fields already selected upstream.
func (r *Resolver) parentOf(f Field) (*Node, error) {
	s := r.sel
	if f == FieldCategory {
		return r.root, nil
	}

	if s.Category == "" {
		return nil, invalid(f, "", "requires a category")
	}
	cat := r.root.children[s.Category]
	if cat.IsLeaf() {
		return nil, invalid(f, "", fmt.Sprintf("not allowed: category %q is a position", s.Category))
	}
	if f == FieldSubcategory {
		return cat, nil
	}

	if s.Subcategory == "" {
		return nil, invalid(f, "", "requires a subcategory")
	}
	sub := cat.children[s.Subcategory]
	if sub.IsLeaf() {
		return nil, invalid(f, "", fmt.Sprintf("not allowed: subcategory %q is a position", s.Subcategory))
	}
	if f == FieldNestedCategory || s.NestedCategory == "" {
		return sub, nil
	}
	return sub.children[s.NestedCategory], nil
}

// autoSelect fills and locks the position when the position field offers
// exactly one option. Category and subcategory are never auto-selected.
func (r *Resolver) autoSelect() {
	if r.sel.Position != "" {
		return
	}
	st := r.Step()
	if st.PositionField != FieldPosition || len(st.Positions) != 1 {
		return
	}
	r.sel.Position = st.Positions[0]
	r.sel.PositionLocked = true
}

// Step describes the options for the next choice, or the node the final
// choice was made from once the selection is complete.
func (r *Resolver) Step() Step {
	s := r.sel
	if s.Category == "" {
		return newStep(NoCategory, r.root, FieldCategory, FieldCategory)
	}

	cat := r.root.children[s.Category]
	if cat.IsLeaf() {
		st := newStep(Terminal, r.root, FieldCategory, FieldCategory)
		st.TerminalField = FieldCategory
		return st
	}
	if s.Subcategory == "" {
		return newStep(CategorySelected, cat, FieldSubcategory, FieldSubcategory)
	}

	sub := cat.children[s.Subcategory]
	if sub.IsLeaf() {
		st := newStep(Terminal, cat, FieldSubcategory, FieldSubcategory)
		st.TerminalField = FieldSubcategory
		return st
	}

	var st Step
	if s.NestedCategory == "" {
		st = newStep(SubcategorySelected, sub, FieldPosition, FieldNestedCategory)
	} else {
		st = newStep(NestedCategorySelected, sub.children[s.NestedCategory], FieldPosition, "")
	}
	if s.Position != "" {
		st.State = PositionSelected
		st.TerminalField = FieldPosition
	}
	return st
}
