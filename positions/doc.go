// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package positions resolves electable offices against the party's position
trees.

# Position Trees

Each election type (INTERNAL_PARTY, PRIMARIES) has one tree, keyed at the
top by administrative level. Below a level a key maps either to null (the
key is a position) or to another mapping (the key needs a further choice):

	{
	  "VILLAGE_CELL": {
	    "LC1": null,
	    "SIG_COMMITTEE": {
	      "YOUTH": {"CHAIRPERSON": null, "SECRETARY": null}
	    }
	  }
	}

Trees are decoded once into Node values (leaf or category) and validated:
no empty mappings, no nesting deeper than MaxDepth below a level, no keys
containing the path separator.

	catalog, err := positions.LoadCatalog(os.Getenv("POSITION_TREES_DIR"))

# Classification

Classify reports one of four kinds for any node:

	DIRECT_POSITION          the node is a position
	ALL_CHILDREN_POSITIONS   every child is a position
	SOME_CHILDREN_NESTED     every child needs descent
	MIXED                    both at once

# Resolver

A Resolver holds one form session's Selection. Every Set validates the key
against the node it is chosen from and resets all downstream fields. When
the position field offers a single option it is filled in and locked.

	r, _ := catalog.Resolver(positions.Primaries, positions.LevelVillageCell)
	_ = r.SelectCategory("SIG_COMMITTEE")
	_ = r.SelectSubcategory("YOUTH")
	_ = r.SelectPosition("CHAIRPERSON")

# Paths

Build produces the canonical dot path; the shallowest position wins:

	PRIMARIES.VILLAGE_CELL.SIG_COMMITTEE.YOUTH.CHAIRPERSON

Parse is its inverse and is used to restore an edit form. A stored path
that no longer matches the tree yields a *PathError wrapping
ErrPathInconsistency and an empty Selection.

# Errors

	ErrInvalidSelection         key not valid where it was chosen
	ErrIncompletePathSelection  selection stops before a position
	ErrPathInconsistency        stored path does not resolve

The package does no logging and no I/O beyond loading trees.
*/
package positions
