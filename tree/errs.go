package tree

import (
	"errors"
	"fmt"
)

var (
	ErrPathResolution     = errors.New("path resolution error")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNotContainer       = errors.New("not a container")
	ErrUnknownRecordType  = errors.New("unknown record type")
)

// PathResolutionError reports a path that does not resolve against a tree.
// Index is the position in Path of the segment that failed, or -1 when the
// failure concerns the value at Path itself (for example a missing item).
type PathResolutionError struct {
	Path   Path
	Index  int
	Reason string
}

func (e *PathResolutionError) Error() string {
	if e.Index < 0 || e.Index >= len(e.Path) {
		return fmt.Sprintf("%s at %q: %s", ErrPathResolution, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s at %q (segment %s): %s", ErrPathResolution, e.Path, e.Path[e.Index], e.Reason)
}

func (e *PathResolutionError) Unwrap() error { return ErrPathResolution }

// InvariantViolationError is returned when a record fails validation on
// construction.
type InvariantViolationError struct {
	Record    string
	Invariant string
	Reason    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: record %s: %s: %s", ErrInvariantViolation, e.Record, e.Invariant, e.Reason)
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }
