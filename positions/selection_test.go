// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import (
	"reflect"
	"testing"
)

func TestSelection_FieldsAndString(t *testing.T) {
	sel := &Selection{
		ElectionType: Primaries,
		Level:        LevelNational,
		Category:     "MEMBER_OF_PARLIAMENT",
		Subcategory:  "SPECIAL_INTEREST_GROUPS",
	}

	want := []Field{FieldCategory, FieldSubcategory}
	if got := sel.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := sel.String(); got != "PRIMARIES.NATIONAL.MEMBER_OF_PARLIAMENT.SPECIAL_INTEREST_GROUPS" {
		t.Errorf("Unexpected string: %s", got)
	}
	if sel.Get(FieldLevel) != "NATIONAL" {
		t.Errorf("Expected level NATIONAL, got %s", sel.Get(FieldLevel))
	}
}

func TestSelection_ClearFromReleasesLock(t *testing.T) {
	sel := &Selection{
		ElectionType:   Primaries,
		Level:          LevelVillageCell,
		Category:       "SIG_COMMITTEE",
		Subcategory:    "PWD",
		Position:       "CHAIRPERSON",
		PositionLocked: true,
	}
	sel.clearFrom(FieldSubcategory)

	if sel.Subcategory != "" || sel.Position != "" || sel.PositionLocked {
		t.Errorf("Expected subcategory and below cleared, got %+v", sel)
	}
	if sel.Category != "SIG_COMMITTEE" {
		t.Errorf("Expected category kept, got %s", sel.Category)
	}
}
