package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bitmk2/flocker/debug"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

// EncodeDiff writes d for humans, one change per line:
//
//	- path: item     Remove
//	= path: value    Set
//	~ path: old -> new
//	+ path: item     Add
//
// The "~" form is used for a Set when the base is known and the Set
// overwrites a value, as the tree stands after the changes before it. When
// d does not apply to the base, changes from the failing one on use "=".
func EncodeDiff(d libdiff.Diff, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	olds := make([]*tree.Value, len(d.Changes))
	if es.base != nil {
		err := d.Replay(*es.base, func(i int, _ libdiff.Change, prev tree.Value, found bool) error {
			if found {
				olds[i] = &prev
			}
			return nil
		})
		if err != nil && debug.Diff() {
			debug.Logf("encode diff: base does not apply: %v\n", err)
		}
	}
	for i, c := range d.Changes {
		ln, err := es.diffLine(c, olds[i])
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, ln+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) diffLine(c libdiff.Change, old *tree.Value) (string, error) {
	switch x := c.(type) {
	case libdiff.Remove:
		return es.opLine("-", RemoveColor, x.Path, es.value(x.Item)), nil
	case libdiff.Add:
		return es.opLine("+", AddColor, x.Path, es.value(x.Item)), nil
	case libdiff.Set:
		if old == nil {
			return es.opLine("=", SetColor, x.Path, es.value(x.Value)), nil
		}
		if es.strDiff && old.Kind() == tree.StringKind && x.Value.Kind() == tree.StringKind {
			return es.opLine("~", SetColor, x.Path, es.strEdits(old.Str(), x.Value.Str())), nil
		}
		return es.opLine("~", SetColor, x.Path, es.value(*old)+" -> "+es.value(x.Value)), nil
	case nil:
		return "", &libdiff.MalformedDiffError{Reason: "nil change"}
	}
	return "", fmt.Errorf("cannot encode change %T", c)
}

func (es *EncState) opLine(op string, attr ColorAttr, p tree.Path, rest string) string {
	ps := p.String()
	if p.IsRoot() {
		ps = "."
	}
	return es.color(tree.AnyKind, attr, op) + " " +
		es.color(tree.AnyKind, PathColor, ps) +
		es.color(tree.MappingKind, SepColor, ":") + " " + rest
}

func (es *EncState) value(v tree.Value) string {
	k := v.Kind()
	if k == tree.MappingKind || k == tree.SetKind {
		return v.String()
	}
	return es.color(k, ValueColor, v.String())
}

// strEdits renders the edit from a to b inside one quoted string, marking
// deletions as [-text-] and insertions as {+text+}.
func (es *EncState) strEdits(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	var sb strings.Builder
	sb.WriteByte('"')
	for _, d := range diffs {
		text := quoteBody(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString(es.color(tree.AnyKind, DeleteTextColor, "[-"+text+"-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(es.color(tree.AnyKind, InsertTextColor, "{+"+text+"+}"))
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func quoteBody(s string) string {
	q := fmt.Sprintf("%q", s)
	return q[1 : len(q)-1]
}
