package libdiff

import (
	"errors"
	"testing"

	"github.com/bitmk2/flocker/tree"
)

func volumes(v tree.Value) tree.Value {
	return m("volumes", m("v1", v))
}

func TestApplyBatchAtomicity(t *testing.T) {
	before := volumes(volumeType.MustNew(map[string]tree.Value{}))
	at := tree.Path{key("volumes"), key("v1")}
	setDataset := Set{Path: at.Append(tree.Field("dataset")), Value: tree.FromString("ds1")}
	setMount := Set{Path: at.Append(tree.Field("mountpoint")), Value: tree.FromString("/mnt")}

	if _, err := setDataset.Apply(before); !errors.Is(err, tree.ErrInvariantViolation) {
		t.Fatalf("expected invariant violation applying %s alone, got %v", setDataset, err)
	}
	got, err := New(setDataset, setMount).Apply(before)
	if err != nil {
		t.Fatal(err)
	}
	want := volumes(volumeType.MustNew(map[string]tree.Value{
		"dataset":    tree.FromString("ds1"),
		"mountpoint": tree.FromString("/mnt"),
	}))
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
	if d := Create(before, want); !d.Equal(New(setDataset, setMount)) {
		t.Errorf("Create = %s", d)
	}
}

func TestApplyInvariantViolation(t *testing.T) {
	before := volumes(volumeType.MustNew(map[string]tree.Value{}))
	d := New(
		Set{Path: tree.Path{key("volumes"), key("v1"), tree.Field("dataset")}, Value: tree.FromString("ds1")},
		Set{Path: tree.Path{key("volumes"), key("other")}, Value: tree.FromInt(1)},
	)
	_, err := d.Apply(before)
	var ive *InvariantViolationError
	if !errors.As(err, &ive) {
		t.Fatalf("expected InvariantViolationError, got %v", err)
	}
	if ive.Record != "diffVolume" || ive.Invariant != "mounted" {
		t.Errorf("unexpected violation %+v", ive)
	}
}

func TestApplyPathResolution(t *testing.T) {
	base := m("a", m("x", tree.FromInt(1)), "s", ints(1), "n1", node("n1", strs("web")))
	tests := []struct {
		name   string
		change Change
	}{
		{"missing intermediate", Set{Path: tree.Path{key("b"), key("x")}, Value: tree.FromInt(1)}},
		{"missing container", Remove{Path: tree.Path{key("b")}, Item: tree.FromString("x")}},
		{"absent key", Remove{Path: tree.Path{key("a")}, Item: tree.FromString("zz")}},
		{"absent element", Remove{Path: tree.Path{key("s")}, Item: tree.FromInt(5)}},
		{"field of mapping", Set{Path: tree.Path{key("a"), tree.Field("x")}, Value: tree.FromInt(1)}},
		{"add to mapping", Add{Path: tree.Path{key("a")}, Item: tree.FromInt(1)}},
		{"key of set", Set{Path: tree.Path{key("s"), tree.Key(tree.FromInt(1))}, Value: tree.FromInt(2)}},
		{"scalar container", Set{Path: tree.Path{key("a"), key("x"), key("y")}, Value: tree.FromInt(1)}},
		{"unknown field set", Set{Path: tree.Path{key("n1"), tree.Field("nosuch")}, Value: tree.FromInt(1)}},
		{"unknown field remove", Remove{Path: tree.Path{key("n1")}, Item: tree.FromString("nosuch")}},
		{"unset field remove", Remove{Path: tree.Path{key("n1")}, Item: tree.FromString("labels")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.change).Apply(base)
			var pre *PathResolutionError
			if !errors.As(err, &pre) {
				t.Fatalf("expected PathResolutionError, got %v", err)
			}
			if !errors.Is(err, tree.ErrPathResolution) {
				t.Errorf("%v does not wrap ErrPathResolution", err)
			}
			if errors.Is(err, tree.ErrInvariantViolation) {
				t.Errorf("%v reported as invariant violation", err)
			}
		})
	}
}

func TestApplyMalformed(t *testing.T) {
	d := New(
		Set{Value: tree.FromInt(1)},
		Set{Path: tree.Path{key("a")}, Value: tree.FromInt(2)},
	)
	_, err := d.Apply(tree.EmptyMapping())
	var mde *MalformedDiffError
	if !errors.As(err, &mde) {
		t.Fatalf("expected MalformedDiffError, got %v", err)
	}
	if mde.Index != 0 {
		t.Errorf("index %d, want 0", mde.Index)
	}
	if _, err := New(nil).Apply(tree.EmptyMapping()); !errors.Is(err, ErrMalformedDiff) {
		t.Errorf("nil change: expected ErrMalformedDiff, got %v", err)
	}
}

func TestApplyReplacement(t *testing.T) {
	d := New(Set{Value: ints(7)})
	if !d.IsReplacement() {
		t.Fatalf("%s is not a replacement", d)
	}
	got, err := d.Apply(m("a", tree.FromInt(1)))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ints(7)) {
		t.Errorf("got %s", got)
	}
}

func TestApplyRootContainer(t *testing.T) {
	got, err := New(
		Remove{Item: tree.FromString("a")},
		Set{Path: tree.Path{key("b")}, Value: tree.FromInt(2)},
	).Apply(m("a", tree.FromInt(1)))
	if err != nil {
		t.Fatal(err)
	}
	if want := m("b", tree.FromInt(2)); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestApplyMember(t *testing.T) {
	base := m("s", tree.FromSlice([]tree.Value{m("id", tree.FromInt(1)), m("id", tree.FromInt(2))}))
	d := New(Set{
		Path:  tree.Path{key("s"), tree.Member(m("id", tree.FromInt(1)))},
		Value: m("id", tree.FromInt(3)),
	})
	got, err := d.Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	want := m("s", tree.FromSlice([]tree.Value{m("id", tree.FromInt(2)), m("id", tree.FromInt(3))}))
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	a := m("nodes", m("n1", node("n1", strs("web"))), "x", ints(1, 2))
	copyA := m("nodes", m("n1", node("n1", strs("web"))), "x", ints(1, 2))
	b := m("nodes", m("n1", node("n1", strs("db")), "n2", node("n2", strs())), "x", ints(2, 3))
	if _, err := Create(a, b).Apply(a); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(copyA) {
		t.Errorf("input modified: %s", a)
	}
	if _, err := New(Remove{Path: tree.Path{key("x")}, Item: tree.FromInt(9)}).Apply(a); err == nil {
		t.Fatal("expected error")
	}
	if !a.Equal(copyA) {
		t.Errorf("input modified by failed apply: %s", a)
	}
}

func TestBatchBoundaries(t *testing.T) {
	base := m("a", m("x", tree.FromInt(1)), "b", tree.FromInt(2), "s", ints())
	tests := []struct {
		name    string
		changes []Change
		batches int
	}{
		{"empty", nil, 0},
		{"same container", []Change{
			Set{Path: tree.Path{key("a")}, Value: tree.FromInt(1)},
			Remove{Item: tree.FromString("b")},
		}, 1},
		{"set parent differs from remove path", []Change{
			Remove{Path: tree.Path{key("a")}, Item: tree.FromString("x")},
			Set{Path: tree.Path{key("a")}, Value: tree.FromInt(1)},
		}, 2},
		{"return to container", []Change{
			Set{Path: tree.Path{key("a")}, Value: tree.FromInt(1)},
			Add{Path: tree.Path{key("s")}, Item: tree.FromInt(1)},
			Set{Path: tree.Path{key("c")}, Value: tree.FromInt(1)},
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTransformProxy(base)
			for _, c := range tt.changes {
				if err := p.transform(c); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := p.commit(); err != nil {
				t.Fatal(err)
			}
			if p.batches != tt.batches {
				t.Errorf("got %d batches, want %d", p.batches, tt.batches)
			}
			if p.state != idle {
				t.Errorf("proxy not idle after commit")
			}
		})
	}
}

func TestReplay(t *testing.T) {
	before := volumes(volumeType.MustNew(map[string]tree.Value{}))
	at := tree.Path{key("volumes"), key("v1")}
	ds := at.Append(tree.Field("dataset"))
	d := New(
		Set{Path: ds, Value: tree.FromString("ds1")},
		Set{Path: ds, Value: tree.FromString("ds2")},
		Set{Path: at.Append(tree.Field("mountpoint")), Value: tree.FromString("/mnt")},
		Set{Path: tree.Path{key("volumes"), key("v2")}, Value: tree.FromInt(1)},
		Set{Path: at, Value: tree.Null()},
	)
	type step struct {
		found bool
		prev  tree.Value
	}
	var got []step
	err := d.Replay(before, func(_ int, _ Change, prev tree.Value, found bool) error {
		got = append(got, step{found, prev})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []step{
		{false, tree.Value{}},
		{true, tree.FromString("ds1")},
		{false, tree.Value{}},
		{false, tree.Value{}},
		{true, volumeType.MustNew(map[string]tree.Value{
			"dataset":    tree.FromString("ds2"),
			"mountpoint": tree.FromString("/mnt"),
		})},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d steps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].found != want[i].found || (want[i].found && !got[i].prev.Equal(want[i].prev)) {
			t.Errorf("step %d: got %v %s, want %v %s", i, got[i].found, got[i].prev, want[i].found, want[i].prev)
		}
	}

	stop := errors.New("stop")
	n := 0
	err = d.Replay(before, func(i int, _ Change, _ tree.Value, _ bool) error {
		n++
		if i == 1 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || n != 2 {
		t.Errorf("got %v after %d calls", err, n)
	}

	stale := New(Remove{Path: tree.Path{key("nope")}, Item: tree.FromString("x")}, d.Changes[0])
	n = 0
	err = stale.Replay(before, func(int, Change, tree.Value, bool) error {
		n++
		return nil
	})
	if !errors.Is(err, tree.ErrPathResolution) || n != 1 {
		t.Errorf("stale base: got %v after %d calls", err, n)
	}
}
