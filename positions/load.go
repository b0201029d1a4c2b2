// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTreeJSON decodes a tree document. Key order is preserved.
func ParseTreeJSON(et ElectionType, data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSON(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidTree)
	}
	return newTree(et, root)
}

func decodeJSON(dec *json.Decoder, at string) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTree, describe(at), err)
	}
	if tok == nil {
		return leaf, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: %s: value must be null or an object", ErrInvalidTree, describe(at))
	}

	n := &Node{children: make(map[string]*Node)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTree, describe(at), err)
		}
		key := tok.(string)
		child, err := decodeJSON(dec, join(at, key))
		if err != nil {
			return nil, err
		}
		if err := n.add(key, child, at); err != nil {
			return nil, err
		}
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTree, describe(at), err)
	}
	return n, nil
}

// ParseTreeYAML decodes a tree document written as YAML. A key with no
// value (or an explicit null) is a position.
func ParseTreeYAML(et ElectionType, data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTree)
	}
	root, err := decodeYAML(doc.Content[0], "")
	if err != nil {
		return nil, err
	}
	return newTree(et, root)
}

func decodeYAML(y *yaml.Node, at string) (*Node, error) {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	switch {
	case y.Kind == yaml.ScalarNode && y.Tag == "!!null":
		return leaf, nil
	case y.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: %s (line %d): value must be null or a mapping", ErrInvalidTree, describe(at), y.Line)
	}

	n := &Node{children: make(map[string]*Node)}
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: %s (line %d): keys must be scalars", ErrInvalidTree, describe(at), k.Line)
		}
		child, err := decodeYAML(v, join(at, k.Value))
		if err != nil {
			return nil, err
		}
		if err := n.add(k.Value, child, at); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (n *Node) add(key string, child *Node, at string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: %s: empty key", ErrInvalidTree, describe(at))
	case strings.Contains(key, Separator):
		return fmt.Errorf("%w: %s: key %q contains %q", ErrInvalidTree, describe(at), key, Separator)
	}
	if _, dup := n.children[key]; dup {
		return fmt.Errorf("%w: %s: duplicate key %q", ErrInvalidTree, describe(at), key)
	}
	n.keys = append(n.keys, key)
	n.children[key] = child
	return nil
}

// newTree checks the shape rules every tree must satisfy: every level is a
// non-empty mapping, no mapping is empty, and nothing nests deeper than
// MaxDepth below its level.
func newTree(et ElectionType, root *Node) (*Tree, error) {
	if et == "" {
		return nil, fmt.Errorf("%w: election type required", ErrInvalidTree)
	}
	if root.IsLeaf() || root.Len() == 0 {
		return nil, fmt.Errorf("%w: %s: document must map levels to position trees", ErrInvalidTree, et)
	}

	t := &Tree{electionType: et, byLevel: make(map[Level]*Node, root.Len())}
	for _, key := range root.keys {
		n := root.children[key]
		if n.IsLeaf() {
			return nil, fmt.Errorf("%w: %s.%s: level must be a mapping", ErrInvalidTree, et, key)
		}
		if err := checkShape(n, string(et)+Separator+key, 0); err != nil {
			return nil, err
		}
		t.levels = append(t.levels, Level(key))
		t.byLevel[Level(key)] = n
	}
	return t, nil
}

func checkShape(n *Node, at string, depth int) error {
	if n.IsLeaf() {
		return nil
	}
	if depth == MaxDepth {
		return fmt.Errorf("%w: %s: nested deeper than %d levels", ErrInvalidTree, at, MaxDepth)
	}
	if n.Len() == 0 {
		return fmt.Errorf("%w: %s: empty mapping", ErrInvalidTree, at)
	}
	for _, key := range n.keys {
		if err := checkShape(n.children[key], at+Separator+key, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func join(at, key string) string {
	if at == "" {
		return key
	}
	return at + Separator + key
}

func describe(at string) string {
	if at == "" {
		return "document root"
	}
	return at
}
