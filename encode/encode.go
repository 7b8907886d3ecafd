package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"

	"github.com/bitmk2/flocker/format"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

type EncState struct {
	format  format.Format
	tagged  bool
	indent  int
	base    *tree.Value
	strDiff bool
	colors  *Colors
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(k tree.Kind, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(k, a, s)
}

// Encode writes v as a JSON or YAML document followed by a newline.
func Encode(v tree.Value, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	var x any = tree.ToAny(v)
	if es.tagged {
		x = v
	}
	return encodeDoc(x, w, es)
}

// EncodeDiffDoc writes the serialized form of d as a JSON or YAML document.
func EncodeDiffDoc(d libdiff.Diff, w io.Writer, opts ...EncodeOption) error {
	if err := d.Validate(); err != nil {
		return err
	}
	es := newEncState(opts)
	es.tagged = true
	return encodeDoc(d, w, es)
}

func encodeDoc(x any, w io.Writer, es *EncState) error {
	var (
		d   []byte
		err error
	)
	switch {
	case es.format.IsJSON() && es.indent > 0:
		d, err = json.MarshalIndent(x, "", fmt.Sprintf("%*s", es.indent, ""))
	case es.format.IsJSON():
		d, err = json.Marshal(x)
	case es.tagged:
		var j []byte
		if j, err = json.Marshal(x); err == nil {
			d, err = yaml.JSONToYAML(j)
		}
	default:
		d, err = yaml.MarshalWithOptions(x, yaml.Indent(es.indent))
	}
	if err != nil {
		return err
	}
	s := string(d)
	if es.format.IsYAML() && es.colors != nil {
		s = es.colorYAML(s)
	}
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err = io.WriteString(w, s)
	return err
}

func (es *EncState) colorYAML(src string) string {
	prop := func(k tree.Kind, a ColorAttr) printer.PrintFunc {
		return func() *printer.Property {
			pre, suf := es.colors.escapes(k, a)
			return &printer.Property{Prefix: pre, Suffix: suf}
		}
	}
	p := printer.Printer{
		MapKey: prop(tree.MappingKind, KeyColor),
		Bool:   prop(tree.BoolKind, ValueColor),
		String: prop(tree.StringKind, ValueColor),
		Number: prop(tree.NumberKind, ValueColor),
	}
	return p.PrintTokens(lexer.Tokenize(src))
}
