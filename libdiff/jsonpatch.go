package libdiff

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/bitmk2/flocker/tree"
)

type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// JSONPatch exports d, as applied to base, as an RFC 6902 patch over the
// tree.ToAny projection of base. Only changes to records and to mappings
// with string keys can be expressed; anything touching a set fails with
// ErrNotJSONPatchable.
//
// Container kinds are resolved by running d through the applier, so the
// same errors as d.Apply(base) are reported.
func JSONPatch(d Diff, base tree.Value) (jsonpatch.Patch, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var ops []patchOp
	if d.IsReplacement() {
		ops = append(ops, patchOp{Op: "replace", Path: "", Value: tree.ToAny(d.Changes[0].(Set).Value)})
		return decodePatch(ops)
	}
	p := newTransformProxy(base)
	for i, c := range d.Changes {
		if err := p.transform(c); err != nil {
			return nil, err
		}
		op, err := toPatchOp(c, p.ev.Kind())
		if err != nil {
			return nil, fmt.Errorf("change %d %s: %w", i, c, err)
		}
		ops = append(ops, op)
	}
	if _, err := p.commit(); err != nil {
		return nil, err
	}
	return decodePatch(ops)
}

func toPatchOp(c Change, container tree.Kind) (patchOp, error) {
	if container == tree.SetKind {
		return patchOp{}, fmt.Errorf("%w: set in %s", ErrNotJSONPatchable, container)
	}
	switch x := c.(type) {
	case Set:
		ptr, err := pointer(x.Path)
		if err != nil {
			return patchOp{}, err
		}
		return patchOp{Op: "add", Path: ptr, Value: tree.ToAny(x.Value)}, nil
	case Remove:
		if x.Item.Kind() != tree.StringKind {
			return patchOp{}, fmt.Errorf("%w: key %s", ErrNotJSONPatchable, x.Item)
		}
		ptr, err := pointer(x.Path)
		if err != nil {
			return patchOp{}, err
		}
		return patchOp{Op: "remove", Path: ptr + "/" + escapePointer(x.Item.Str())}, nil
	}
	return patchOp{}, fmt.Errorf("%w: %s", ErrNotJSONPatchable, c.Kind())
}

// pointer renders p as an RFC 6901 JSON pointer.
func pointer(p tree.Path) (string, error) {
	var b strings.Builder
	for _, seg := range p {
		var tok string
		switch {
		case seg.Kind == tree.FieldSegment:
			tok = seg.Name
		case seg.Kind == tree.KeySegment && seg.Key.Kind() == tree.StringKind:
			tok = seg.Key.Str()
		default:
			return "", fmt.Errorf("%w: segment %s", ErrNotJSONPatchable, seg)
		}
		b.WriteByte('/')
		b.WriteString(escapePointer(tok))
	}
	return b.String(), nil
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func decodePatch(ops []patchOp) (jsonpatch.Patch, error) {
	d, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	return jsonpatch.DecodePatch(d)
}
