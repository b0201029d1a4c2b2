// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package positions

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection: a key is not valid for the node it was chosen from.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrIncompletePathSelection: the selection does not reach a position.
	ErrIncompletePathSelection = errors.New("incomplete path selection")
	// ErrPathInconsistency: a stored path does not resolve against the tree.
	ErrPathInconsistency = errors.New("position path inconsistent with configuration")
	// ErrInvalidTree: a tree document is malformed.
	ErrInvalidTree = errors.New("invalid position tree")
)

// SelectionError describes a rejected or incomplete selection.
// It unwraps to ErrInvalidSelection or ErrIncompletePathSelection.
type SelectionError struct {
	Field  Field
	Key    string
	Reason string
	Err    error
}

func (e *SelectionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %s %s", e.Err, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s %q %s", e.Err, e.Field, e.Key, e.Reason)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

func invalid(f Field, key, reason string) error {
	return &SelectionError{Field: f, Key: key, Reason: reason, Err: ErrInvalidSelection}
}

func incomplete(f Field, reason string) error {
	return &SelectionError{Field: f, Reason: reason, Err: ErrIncompletePathSelection}
}

// PathError describes a stored path that could not be resolved.
// Segment is the zero-based index of the offending segment.
type PathError struct {
	Path    string
	Segment int
	Reason  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %q segment %d: %s", ErrPathInconsistency, e.Path, e.Segment, e.Reason)
}

func (e *PathError) Unwrap() error {
	return ErrPathInconsistency
}
