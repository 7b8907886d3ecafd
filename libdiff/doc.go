// Package libdiff computes, composes and applies structural differences
// between two tree values.
//
// # Usage
//
//	// Compute a diff between two snapshots
//	d := libdiff.Create(before, after)
//
//	// Apply it
//	got, err := d.Apply(before) // got is equal to after
//
//	// Chain diffs without re-diffing full snapshots
//	ac, err := libdiff.Compose(ab, bc)
//
// A Diff is an ordered list of Changes, each one of Remove, Set or Add,
// addressed by a tree.Path. Diffs serialize to tagged JSON (and YAML) and
// are what a control service sends to its convergence agents.
//
// # Batching
//
// Applying a Diff groups consecutive changes that mutate the same container
// and applies them through a single tree.Evolver, so record invariants are
// checked once against the fully changed record rather than after each
// field. Create emits all changes to a container's own entries
// contiguously to make full use of this.
//
// # Related Packages
//
//   - github.com/bitmk2/flocker/tree - values, paths and evolvers
//   - github.com/bitmk2/flocker/encode - rendering diffs for humans
package libdiff
