// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import "strings"

// Field names one input of the position form.
type Field string

const (
	FieldElectionType   Field = "election_type"
	FieldLevel          Field = "level"
	FieldCategory       Field = "category"
	FieldSubcategory    Field = "subcategory"
	FieldNestedCategory Field = "nested_category"
	FieldPosition       Field = "position"
)

// selectable lists the fields a resolver fills, upstream first.
var selectable = []Field{FieldCategory, FieldSubcategory, FieldNestedCategory, FieldPosition}

// Selection is the form state for one candidacy's office. Fields fill from
// the left: a field is only meaningful when every field before it is set.
type Selection struct {
	ElectionType   ElectionType `json:"election_type"`
	Level          Level        `json:"level"`
	Category       string       `json:"category,omitempty"`
	Subcategory    string       `json:"subcategory,omitempty"`
	NestedCategory string       `json:"nested_category,omitempty"`
	Position       string       `json:"position,omitempty"`

	// PositionLocked marks a position filled in automatically because it
	// was the only option; the form shows it read-only.
	PositionLocked bool `json:"position_locked,omitempty"`
}

// Get returns the value of a selectable field.
func (s *Selection) Get(f Field) string {
	switch f {
	case FieldCategory:
		return s.Category
	case FieldSubcategory:
		return s.Subcategory
	case FieldNestedCategory:
		return s.NestedCategory
	case FieldPosition:
		return s.Position
	case FieldElectionType:
		return string(s.ElectionType)
	case FieldLevel:
		return string(s.Level)
	}
	return ""
}

// Fields returns the selectable fields that are set, upstream first.
func (s *Selection) Fields() []Field {
	var out []Field
	for _, f := range selectable {
		if s.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

func (s *Selection) set(f Field, v string) {
	switch f {
	case FieldCategory:
		s.Category = v
	case FieldSubcategory:
		s.Subcategory = v
	case FieldNestedCategory:
		s.NestedCategory = v
	case FieldPosition:
		s.Position = v
	}
}

// clearFrom empties f and every field after it.
func (s *Selection) clearFrom(f Field) {
	started := false
	for _, g := range selectable {
		if g == f {
			started = true
		}
		if started {
			s.set(g, "")
		}
	}
	if started {
		s.PositionLocked = false
	}
}

// String renders the selection as its set segments joined by Separator.
// It is not a position path: it may stop short of a position.
func (s *Selection) String() string {
	parts := []string{string(s.ElectionType), string(s.Level)}
	for _, f := range selectable {
		if v := s.Get(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, Separator)
}

func isSelectable(f Field) bool {
	for _, g := range selectable {
		if g == f {
			return true
		}
	}
	return false
}
