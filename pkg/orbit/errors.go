package orbit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is returned by [System.Register] when the node ID is
	// the zero ID. All nodes must have non-empty identifiers.
	ErrInvalidID = errors.New("node ID must not be empty")

	// ErrDuplicateID is returned by [System.Register] when a node with the
	// same ID is already registered. Node IDs must be unique per run.
	ErrDuplicateID = errors.New("duplicate node ID")

	// ErrNilNode is returned by [System.Register] when the node is nil.
	ErrNilNode = errors.New("node must not be nil")

	// ErrInvalidRadius is returned by [System.Register] when a node's
	// radius is zero, negative, or not finite.
	ErrInvalidRadius = errors.New("node radius must be positive and finite")

	// ErrInvalidPolicy is returned by [System.Register] when a cluster
	// policy carries a negative bound or MinSize > MaxSize.
	ErrInvalidPolicy = errors.New("cluster policy bounds are invalid")

	// ErrDanglingReference is the sentinel matched by
	// [DanglingReferenceError] via errors.Is.
	ErrDanglingReference = errors.New("neighbor references an unregistered node")
)

// InvalidConfigurationError reports a node that cannot take part in a layout
// run: degenerate radius, inconsistent policy bounds, a duplicate or empty
// ID. [System.Register] raises it before [System.Distribute] is ever
// invoked; adapters that pre-validate node payloads may construct it too.
type InvalidConfigurationError struct {
	ID  ID
	Err error
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("node %q: %v", e.ID, e.Err)
}

// Unwrap returns the underlying cause. From [System.Register] that is one of
// the package sentinels (ErrInvalidRadius, ErrInvalidPolicy, ErrDuplicateID,
// ErrInvalidID, ErrNilNode), so errors.Is matches them.
func (e *InvalidConfigurationError) Unwrap() error { return e.Err }

// DanglingReferenceError reports every declared neighbor ID that has no
// matching registration in the run. It aborts [System.Distribute] before any
// weight or placement work; no node receives a position.
type DanglingReferenceError struct {
	// IDs holds the referenced-but-unregistered IDs in canonical order.
	IDs []ID
}

func (e *DanglingReferenceError) Error() string {
	names := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		names[i] = id.String()
	}
	return fmt.Sprintf("%v: %s", ErrDanglingReference, strings.Join(names, ", "))
}

// Unwrap returns [ErrDanglingReference] so errors.Is matches the sentinel.
func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }
