// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

// ElectionType names one position tree.
type ElectionType string

const (
	InternalParty ElectionType = "INTERNAL_PARTY"
	Primaries     ElectionType = "PRIMARIES"
)

// Level is one rung of the administrative hierarchy.
type Level string

const (
	LevelNational                 Level = "NATIONAL"
	LevelRegion                   Level = "REGION"
	LevelDistrict                 Level = "DISTRICT"
	LevelConstituencyMunicipality Level = "CONSTITUENCY_MUNICIPALITY"
	LevelSubcountyDivision        Level = "SUBCOUNTY_DIVISION"
	LevelParishWard               Level = "PARISH_WARD"
	LevelVillageCell              Level = "VILLAGE_CELL"
)

// Separator joins the segments of a position path.
const Separator = "."

// MaxDepth is the deepest node allowed below a level:
// category, subcategory, nested category, position.
const MaxDepth = 4

// Node is either a leaf (a selectable position) or a category holding
// further nodes. Nodes are immutable once loaded.
type Node struct {
	keys     []string
	children map[string]*Node
}

// leaf is shared by every position; a nil children map marks it.
var leaf = &Node{}

// IsLeaf reports whether the node is itself a selectable position.
// A nil node is treated as a leaf.
func (n *Node) IsLeaf() bool {
	return n == nil || n.children == nil
}

// Keys returns the child keys in document order.
func (n *Node) Keys() []string {
	if n.IsLeaf() {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Child looks up a direct child by key.
func (n *Node) Child(key string) (*Node, bool) {
	if n.IsLeaf() {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n.IsLeaf() {
		return 0
	}
	return len(n.keys)
}

// Tree holds the per-level position trees of one election type.
type Tree struct {
	electionType ElectionType
	levels       []Level
	byLevel      map[Level]*Node
}

// ElectionType returns the election type the tree describes.
func (t *Tree) ElectionType() ElectionType {
	return t.electionType
}

// Levels returns the levels in document order.
func (t *Tree) Levels() []Level {
	out := make([]Level, len(t.levels))
	copy(out, t.levels)
	return out
}

// Level returns the root node of a level.
func (t *Tree) Level(level Level) (*Node, bool) {
	n, ok := t.byLevel[level]
	return n, ok
}

// Walk calls fn for every node below every level, depth first, in document
// order. The path holds the keys from the level down to the node.
func (t *Tree) Walk(fn func(level Level, path []string, n *Node)) {
	for _, level := range t.levels {
		walk(t.byLevel[level], nil, func(path []string, n *Node) {
			fn(level, path, n)
		})
	}
}

func walk(n *Node, path []string, fn func(path []string, n *Node)) {
	for _, key := range n.Keys() {
		child := n.children[key]
		p := append(append([]string{}, path...), key)
		fn(p, child)
		if !child.IsLeaf() {
			walk(child, p, fn)
		}
	}
}
