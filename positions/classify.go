// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import "fmt"

// Kind classifies a node by the shape of its children.
type Kind int

const (
	// DirectPosition: the node is itself a position.
	DirectPosition Kind = iota + 1
	// AllChildrenPositions: every child is a position.
	AllChildrenPositions
	// SomeChildrenNested: every child needs further descent.
	SomeChildrenNested
	// Mixed: some children are positions, others need descent.
	Mixed
)

var kindNames = map[Kind]string{
	DirectPosition:       "DIRECT_POSITION",
	AllChildrenPositions: "ALL_CHILDREN_POSITIONS",
	SomeChildrenNested:   "SOME_CHILDREN_NESTED",
	Mixed:                "MIXED",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for v, name := range kindNames {
		if name == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", b)
}

// Classify returns the kind of n. A nil node is a direct position.
func Classify(n *Node) Kind {
	if n.IsLeaf() {
		return DirectPosition
	}
	var leaves, nested int
	for _, key := range n.keys {
		if n.children[key].IsLeaf() {
			leaves++
		} else {
			nested++
		}
	}
	switch {
	case nested == 0:
		return AllChildrenPositions
	case leaves == 0:
		return SomeChildrenNested
	default:
		return Mixed
	}
}

// ClassifyKey classifies the child of n selected by key, on behalf of the
// given form field.
func ClassifyKey(n *Node, f Field, key string) (Kind, *Node, error) {
	child, ok := n.Child(key)
	if !ok {
		return 0, nil, invalid(f, key, "is not an option here")
	}
	return Classify(child), child, nil
}

// split partitions the children of n into direct positions and keys that
// need further descent, keeping document order.
func split(n *Node) (direct, nested []string) {
	direct, nested = []string{}, []string{}
	for _, key := range n.Keys() {
		if n.children[key].IsLeaf() {
			direct = append(direct, key)
		} else {
			nested = append(nested, key)
		}
	}
	return direct, nested
}
