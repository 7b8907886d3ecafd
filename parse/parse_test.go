package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

var hostType = tree.MustRegister(tree.MustRecordType("parseHost", []tree.FieldSpec{
	{Name: "name", Kind: tree.StringKind, Mandatory: true},
	{Name: "ports", Kind: tree.SetKind},
}))

func TestParsePlain(t *testing.T) {
	want := tree.FromMap(map[string]tree.Value{
		"hosts": tree.FromMap(map[string]tree.Value{
			"h1": hostType.MustNew(map[string]tree.Value{
				"name":  tree.FromString("h1"),
				"ports": tree.FromSlice([]tree.Value{tree.FromInt(80), tree.FromInt(443)}),
			}),
		}),
		"ratio":   tree.FromFloat(0.5),
		"enabled": tree.FromBool(true),
		"none":    tree.Null(),
	})
	tests := []struct {
		name string
		in   string
		opts []ParseOption
	}{
		{"yaml", `
hosts:
  h1:
    $record: parseHost
    name: h1
    ports: [443, 80, 80]
ratio: 0.5
enabled: true
none: null
`, nil},
		{"json", `{"hosts": {"h1": {"$record": "parseHost", "name": "h1", "ports": [80, 443]}},
 "ratio": 0.5, "enabled": true, "none": null}`, []ParseOption{ParseJSON()}},
		{"json as yaml", `{"hosts": {"h1": {"$record": "parseHost", "name": "h1", "ports": [80, 443]}},
 "ratio": 0.5, "enabled": true, "none": null}`, []ParseOption{ParseYAML()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestParseTagged(t *testing.T) {
	v := tree.FromKeyVals([]tree.KeyVal{
		{Key: tree.FromInt(1), Val: tree.FromFloat(1)},
		{Key: tree.FromString("s"), Val: tree.FromSlice([]tree.Value{tree.EmptyMapping()})},
	})
	d, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	for _, opts := range [][]ParseOption{{ParseJSON(), ParseTagged(true)}, {ParseTagged(true)}} {
		got, err := Parse(d, opts...)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(v) {
			t.Errorf("got %s, want %s", got, v)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParseOption
		is   error
	}{
		{"empty", "  \n", nil, ErrEmpty},
		{"trailing json", `{"a": 1} {"b": 2}`, []ParseOption{ParseJSON()}, ErrTrailing},
		{"bad json", `{"a": }`, []ParseOption{ParseJSON()}, ErrParse},
		{"unknown record", `{"$record": "noSuchType"}`, nil, tree.ErrUnknownRecordType},
		{"invalid record", `{"$record": "parseHost", "ports": []}`, nil, tree.ErrInvariantViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), tt.opts...)
			if !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("%v does not wrap ErrParse", err)
			}
		})
	}
}

func TestParseDiff(t *testing.T) {
	a := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(1)})
	b := tree.FromMap(map[string]tree.Value{"b": tree.FromSlice([]tree.Value{tree.FromInt(2)})})
	d := libdiff.Create(a, b)
	j, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	y, err := libdiff.EncodeYAML(d)
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []struct {
		d    []byte
		opts []ParseOption
	}{{j, []ParseOption{ParseJSON()}}, {j, nil}, {y, nil}} {
		got, err := ParseDiff(in.d, in.opts...)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(d) {
			t.Errorf("got %s, want %s", got, d)
		}
	}
	if _, err := ParseDiff([]byte(`{"$type": "Set"}`)); err == nil || !strings.Contains(err.Error(), "Diff") {
		t.Errorf("unexpected error %v", err)
	}
}
