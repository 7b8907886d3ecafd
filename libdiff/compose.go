package libdiff

import (
	"fmt"

	"github.com/bitmk2/flocker/debug"
)

// Compose returns one Diff equivalent to applying diffs in order.
//
// The changes are concatenated without reordering or merging; batching is
// derived again from container adjacency when the result is applied.
// A whole tree replacement cannot share a Diff with other changes, so a
// replacement among the inputs discards everything before it, and the
// diffs after it are applied to the replacement value.
func Compose(diffs ...Diff) (Diff, error) {
	var res []Change
	replaced := false
	for i, d := range diffs {
		if err := d.Validate(); err != nil {
			return Diff{}, fmt.Errorf("compose diff %d: %w", i, err)
		}
		switch {
		case d.IsReplacement():
			res = []Change{d.Changes[0]}
			replaced = true
		case replaced && !d.IsEmpty():
			v, err := d.Apply(res[0].(Set).Value)
			if err != nil {
				return Diff{}, fmt.Errorf("compose diff %d onto replacement: %w", i, err)
			}
			res = []Change{Set{Value: v}}
		default:
			res = append(res, d.Changes...)
		}
	}
	if debug.Diff() {
		debug.Logf("compose: %d diffs, %d changes\n", len(diffs), len(res))
	}
	return Diff{Changes: res}, nil
}
