package tree

import "fmt"

// Child returns the value addressed by seg inside v.
func (v Value) Child(seg Segment) (Value, error) {
	switch seg.Kind {
	case FieldSegment:
		if v.kind != RecordKind {
			return Value{}, fmt.Errorf("field %s of %s", seg, v.kind)
		}
		res, ok := v.Field(seg.Name)
		if !ok {
			return Value{}, fmt.Errorf("field %s not set in %s", seg, v.rtype.Name())
		}
		return res, nil
	case KeySegment:
		if v.kind != MappingKind {
			return Value{}, fmt.Errorf("key %s of %s", seg, v.kind)
		}
		res, ok := v.Lookup(seg.Key)
		if !ok {
			return Value{}, fmt.Errorf("no key %s", seg)
		}
		return res, nil
	case MemberSegment:
		if v.kind != SetKind {
			return Value{}, fmt.Errorf("member %s of %s", seg, v.kind)
		}
		if !v.Has(seg.Key) {
			return Value{}, fmt.Errorf("no member %s", seg)
		}
		return seg.Key, nil
	}
	return Value{}, fmt.Errorf("invalid segment kind %d", seg.Kind)
}

// Get resolves p against v.
func (v Value) Get(p Path) (Value, error) {
	res := v
	for i, seg := range p {
		child, err := res.Child(seg)
		if err != nil {
			return Value{}, &PathResolutionError{Path: p, Index: i, Reason: err.Error()}
		}
		res = child
	}
	return res, nil
}

// With returns a copy of v where the value at p is replaced by nv. Every
// container on the way is rebuilt through its evolver, so record ancestors
// are validated again. Unchanged substructure is shared with v.
func (v Value) With(p Path, nv Value) (Value, error) {
	return v.with(p, 0, nv)
}

func (v Value) with(p Path, i int, nv Value) (Value, error) {
	if i == len(p) {
		return nv, nil
	}
	seg := p[i]
	child, err := v.Child(seg)
	if err != nil {
		return Value{}, &PathResolutionError{Path: p, Index: i, Reason: err.Error()}
	}
	newChild, err := child.with(p, i+1, nv)
	if err != nil {
		return Value{}, err
	}
	if Equal(child, newChild) {
		return v, nil
	}
	ev, err := v.Evolver()
	if err != nil {
		return Value{}, &PathResolutionError{Path: p, Index: i, Reason: err.Error()}
	}
	if seg.Kind == MemberSegment {
		if err := ev.Remove(seg.Key); err != nil {
			return Value{}, err
		}
		if err := ev.Add(newChild); err != nil {
			return Value{}, err
		}
	} else if err := ev.Set(seg.Item(), newChild); err != nil {
		return Value{}, err
	}
	return ev.Persistent()
}
