package libdiff

import (
	"errors"
	"fmt"

	"github.com/bitmk2/flocker/tree"
)

var (
	ErrMalformedDiff    = errors.New("malformed diff")
	ErrNotJSONPatchable = errors.New("not expressible as a JSON patch")
)

type (
	PathResolutionError     = tree.PathResolutionError
	InvariantViolationError = tree.InvariantViolationError
)

// MalformedDiffError reports a Diff which violates its structural contract,
// such as a whole-tree replacement combined with other changes.
type MalformedDiffError struct {
	Index  int
	Reason string
}

func (e *MalformedDiffError) Error() string {
	return fmt.Sprintf("%s: change %d: %s", ErrMalformedDiff, e.Index, e.Reason)
}

func (e *MalformedDiffError) Unwrap() error { return ErrMalformedDiff }
