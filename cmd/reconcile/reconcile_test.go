package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/format"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/parse"
	"github.com/bitmk2/flocker/tree"
)

const testTypes = `
name: reconcileTest
records:
- name: reconcileNode
  fields:
  - name: hostname
    kind: String
    mandatory: true
  - name: apps
    kind: Set
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "reconcile")
	if err != nil {
		panic(err)
	}
	p := filepath.Join(dir, "types.yaml")
	if err := os.WriteFile(p, []byte(testTypes), 0o644); err != nil {
		panic(err)
	}
	if err := loadTypes([]string{p}); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestDiffApplyRoundTrip(t *testing.T) {
	cfg := &MainConfig{}
	a, err := cfg.readValue(writeFile(t, "a.yaml", `
nodes:
  n1: {$record: reconcileNode, hostname: n1, apps: [web]}
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := cfg.readValue(writeFile(t, "b.json", `
{"nodes": {"n1": {"$record": "reconcileNode", "hostname": "n1", "apps": ["web", "db"]},
           "n2": {"$record": "reconcileNode", "hostname": "n2"}}}
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			cfg := &MainConfig{OutFormat: &f}
			dOut := &bytes.Buffer{}
			if err := diffValues(&DiffConfig{MainConfig: cfg, Indent: 2}, dOut, a, b); err != nil {
				t.Fatal(err)
			}
			dFile := writeFile(t, "d"+f.Suffix(), dOut.String())
			aFile := writeFile(t, "a.yaml", encodeString(t, a))
			d, err := cfg.readDiff(dFile, nil)
			if err != nil {
				t.Fatal(err)
			}
			base, err := cfg.readValue(aFile, nil)
			if err != nil {
				t.Fatal(err)
			}
			aOut := &bytes.Buffer{}
			if err := applyDiff(&ApplyConfig{MainConfig: cfg}, aOut, d, base); err != nil {
				t.Fatal(err)
			}
			got, err := parse.Parse(aOut.Bytes(), parse.ParseFormat(f))
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(b) {
				t.Errorf("got %s, want %s", got, b)
			}
		})
	}
}

func encodeString(t *testing.T, v tree.Value) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := viewValues(&ViewConfig{MainConfig: &MainConfig{}}, buf, []tree.Value{v}); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestDiffPlain(t *testing.T) {
	a := tree.FromMap(map[string]tree.Value{"image": tree.FromString("nginx:1.25"), "old": tree.Null()})
	b := tree.FromMap(map[string]tree.Value{"image": tree.FromString("nginx:1.27")})
	buf := &bytes.Buffer{}
	cfg := &DiffConfig{MainConfig: &MainConfig{}, Plain: true, StrDiff: true}
	if err := diffValues(cfg, buf, a, b); err != nil {
		t.Fatal(err)
	}
	want := "~ [\"image\"]: \"nginx:1.2[-5-]{+7+}\"\n- .: \"old\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffJSONPatch(t *testing.T) {
	a := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(1)})
	b := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(2)})
	buf := &bytes.Buffer{}
	cfg := &DiffConfig{MainConfig: &MainConfig{}, JSONPatch: true}
	if err := diffValues(cfg, buf, a, b); err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"add","path":"/a","value":2}]` + "\n"
	if buf.String() != want {
		t.Errorf("got %s, want %s", buf, want)
	}

	s := tree.FromMap(map[string]tree.Value{"s": tree.FromSlice(nil)})
	s2 := tree.FromMap(map[string]tree.Value{"s": tree.FromSlice([]tree.Value{tree.FromInt(1)})})
	if err := diffValues(cfg, &bytes.Buffer{}, s, s2); !errors.Is(err, libdiff.ErrNotJSONPatchable) {
		t.Errorf("expected ErrNotJSONPatchable, got %v", err)
	}
}

func TestApplyStale(t *testing.T) {
	d := libdiff.New(libdiff.Remove{Path: tree.Path{tree.StringKey("gone")}, Item: tree.FromString("x")})
	err := applyDiff(&ApplyConfig{MainConfig: &MainConfig{}}, &bytes.Buffer{}, d, tree.EmptyMapping())
	if !errors.Is(err, tree.ErrPathResolution) {
		t.Errorf("expected ErrPathResolution, got %v", err)
	}
	buf := &bytes.Buffer{}
	ok := libdiff.New(libdiff.Set{Path: tree.Path{tree.StringKey("a")}, Value: tree.FromInt(1)})
	if err := applyDiff(&ApplyConfig{MainConfig: &MainConfig{}, Check: true}, buf, ok, tree.EmptyMapping()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("-check wrote %q", buf)
	}
}

func TestCompose(t *testing.T) {
	a := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(1)})
	b := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(2), "b": tree.FromInt(1)})
	c := tree.FromMap(map[string]tree.Value{"b": tree.FromInt(1)})
	buf := &bytes.Buffer{}
	j := format.JSONFormat
	cfg := &ComposeConfig{MainConfig: &MainConfig{OutFormat: &j}}
	if err := composeDiffs(cfg, buf, []libdiff.Diff{libdiff.Create(a, b), libdiff.Create(b, c)}); err != nil {
		t.Fatal(err)
	}
	d, err := parse.ParseDiff(buf.Bytes(), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	got, err := d.Apply(a)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(c) {
		t.Errorf("got %s, want %s", got, c)
	}
}

func TestReadDiffs(t *testing.T) {
	var (
		want  []libdiff.Diff
		files []string
	)
	m := map[string]tree.Value{}
	prev := tree.FromMap(m)
	for i := range 8 {
		m[fmt.Sprint("k", i)] = tree.FromInt(int64(i))
		next := tree.FromMap(m)
		d := libdiff.Create(prev, next)
		b, err := json.Marshal(d)
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, d)
		files = append(files, writeFile(t, fmt.Sprintf("d%d.json", i), string(b)))
		prev = next
	}
	cfg := &ComposeConfig{MainConfig: &MainConfig{}}
	got, err := cfg.readDiffs(files, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d diffs, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("diff %d: got %s, want %s", i, got[i], want[i])
		}
	}

	_, err = cfg.readDiffs([]string{"-", files[0], "-"}, strings.NewReader(""))
	if !errors.Is(err, cli.ErrUsage) {
		t.Errorf("stdin twice: got %v", err)
	}
	_, err = cfg.readDiffs([]string{files[0], filepath.Join(t.TempDir(), "missing.json")}, nil)
	if err == nil {
		t.Error("missing file: expected error")
	}
}

func TestGetValues(t *testing.T) {
	cfg := &MainConfig{}
	vs, err := cfg.readValues(writeFile(t, "s.yaml", `
nodes:
  n1: {apps: [web]}
---
nodes:
  n1: {apps: [db]}
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 2 {
		t.Fatalf("got %d documents", len(vs))
	}
	p, err := tree.ParsePath(`["nodes"]["n1"]["apps"]`)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	j := format.JSONFormat
	if err := getValues(&GetConfig{MainConfig: &MainConfig{OutFormat: &j}}, buf, p, vs); err != nil {
		t.Fatal(err)
	}
	if want := "[\n  \"web\"\n]\n[\n  \"db\"\n]\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf, want)
	}
	missing := tree.Path{tree.StringKey("nope")}
	if err := getValues(&GetConfig{MainConfig: cfg}, buf, missing, vs); !errors.Is(err, tree.ErrPathResolution) {
		t.Errorf("expected ErrPathResolution, got %v", err)
	}
}

func TestListTypes(t *testing.T) {
	rt, err := tree.LookupType("reconcileNode")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := listTypes(buf, []*tree.RecordType{rt}); err != nil {
		t.Fatal(err)
	}
	want := "reconcileNode\n\tfield hostname (String, mandatory)\n\tfield apps (Set)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf, want)
	}
}

func TestInFormat(t *testing.T) {
	j := format.JSONFormat
	tests := []struct {
		cfg  *MainConfig
		file string
		data string
		want format.Format
	}{
		{&MainConfig{}, "a.yaml", `{"a": 1}`, format.YAMLFormat},
		{&MainConfig{}, "a.json", "", format.JSONFormat},
		{&MainConfig{}, "-", "a: 1", format.YAMLFormat},
		{&MainConfig{}, "-", `{"a": 1}`, format.JSONFormat},
		{&MainConfig{}, "snapshot", "{a: 1}", format.YAMLFormat},
		{&MainConfig{Y: true}, "a.json", "", format.YAMLFormat},
		{&MainConfig{InFormat: &j, Y: true}, "a.yaml", "", format.JSONFormat},
	}
	for _, tt := range tests {
		if got := tt.cfg.inFormat(tt.file, []byte(tt.data)); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.file, got, tt.want)
		}
	}
}

func TestSplitDocs(t *testing.T) {
	got := splitDocs([]byte("---\na: 1\n---\n\n---\nb: 2\n"))
	var strs []string
	for _, d := range got {
		strs = append(strs, strings.TrimSpace(string(d)))
	}
	if diff := cmp.Diff([]string{"a: 1", "b: 2"}, strs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadStdin(t *testing.T) {
	v, err := (&MainConfig{}).readValue("-", strings.NewReader(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	if want := tree.FromMap(map[string]tree.Value{"a": tree.FromInt(1)}); !v.Equal(want) {
		t.Errorf("got %s", v)
	}
	if _, err := (&MainConfig{}).readValue(filepath.Join(t.TempDir(), "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
