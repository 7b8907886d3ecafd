package libdiff

import (
	"errors"
	"fmt"

	"github.com/bitmk2/flocker/tree"
)

type ChangeKind int

const (
	RemoveChange ChangeKind = iota
	SetChange
	AddChange
)

func (k ChangeKind) String() string {
	switch k {
	case RemoveChange:
		return TypeRemove
	case SetChange:
		return TypeSet
	case AddChange:
		return TypeAdd
	default:
		return "<unknown change>"
	}
}

// Applier is implemented by everything which can be applied to a tree to
// produce a new tree: each Change and Diff.
type Applier interface {
	Apply(v tree.Value) (tree.Value, error)
}

// Change is one atomic edit of a tree. The implementations are Remove, Set
// and Add.
type Change interface {
	Applier
	Kind() ChangeKind
	// Location is the path carried by the change.
	Location() tree.Path

	// container is the path of the container the change mutates.
	container() tree.Path
	mutate(ev *tree.Evolver) error
}

// Remove removes Item, a key or element, from the mapping or set at Path.
// For a record at Path, Item is a field name and the field is unset.
type Remove struct {
	Path tree.Path
	Item tree.Value
}

// Set sets the field or key named by the last segment of Path to Value. An
// empty Path replaces the whole tree.
type Set struct {
	Path  tree.Path
	Value tree.Value
}

// Add adds Item to the set at Path.
type Add struct {
	Path tree.Path
	Item tree.Value
}

func (c Remove) Kind() ChangeKind     { return RemoveChange }
func (c Remove) Location() tree.Path  { return c.Path }
func (c Remove) container() tree.Path { return c.Path }

func (c Remove) mutate(ev *tree.Evolver) error {
	return ev.Remove(c.Item)
}

func (c Remove) Apply(v tree.Value) (tree.Value, error) {
	return Diff{Changes: []Change{c}}.Apply(v)
}

func (c Remove) String() string {
	return fmt.Sprintf("Remove(%q, %s)", c.Path, c.Item)
}

func (c Set) Kind() ChangeKind    { return SetChange }
func (c Set) Location() tree.Path { return c.Path }

func (c Set) container() tree.Path {
	return c.Path.Parent()
}

func (c Set) mutate(ev *tree.Evolver) error {
	seg := c.Path.Last()
	if err := checkSegment(ev.Kind(), seg); err != nil {
		return err
	}
	if seg.Kind == tree.MemberSegment {
		if err := ev.Remove(seg.Key); err != nil {
			return err
		}
		return ev.Add(c.Value)
	}
	return ev.Set(seg.Item(), c.Value)
}

func (c Set) Apply(v tree.Value) (tree.Value, error) {
	return Diff{Changes: []Change{c}}.Apply(v)
}

func (c Set) String() string {
	return fmt.Sprintf("Set(%q, %s)", c.Path, c.Value)
}

func (c Add) Kind() ChangeKind     { return AddChange }
func (c Add) Location() tree.Path  { return c.Path }
func (c Add) container() tree.Path { return c.Path }

func (c Add) mutate(ev *tree.Evolver) error {
	return ev.Add(c.Item)
}

func (c Add) Apply(v tree.Value) (tree.Value, error) {
	return Diff{Changes: []Change{c}}.Apply(v)
}

func (c Add) String() string {
	return fmt.Sprintf("Add(%q, %s)", c.Path, c.Item)
}

var errSegmentKind = errors.New("segment does not address container")

func checkSegment(k tree.Kind, seg tree.Segment) error {
	want := map[tree.SegmentKind]tree.Kind{
		tree.FieldSegment:  tree.RecordKind,
		tree.KeySegment:    tree.MappingKind,
		tree.MemberSegment: tree.SetKind,
	}[seg.Kind]
	if want != k {
		return fmt.Errorf("%w: %s segment %s in %s", errSegmentKind, seg.Kind, seg, k)
	}
	return nil
}

// isReplacement reports whether c replaces the whole tree.
func isReplacement(c Change) bool {
	s, ok := c.(Set)
	return ok && s.Path.IsRoot()
}
