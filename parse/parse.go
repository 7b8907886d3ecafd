// Package parse decodes snapshots and diffs from JSON or YAML documents.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/bitmk2/flocker/format"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

// Parse decodes one snapshot. Record types named in the document must be
// registered.
func Parse(d []byte, opts ...ParseOption) (tree.Value, error) {
	pOpts := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return tree.Value{}, ErrEmpty
	}
	if pOpts.tagged {
		j, err := toJSON(d, pOpts.format)
		if err != nil {
			return tree.Value{}, err
		}
		var v tree.Value
		if err := json.Unmarshal(j, &v); err != nil {
			return tree.Value{}, wrap(err)
		}
		return v, nil
	}
	x, err := decodePlain(d, pOpts.format)
	if err != nil {
		return tree.Value{}, err
	}
	v, err := tree.FromAny(x)
	if err != nil {
		return tree.Value{}, wrap(err)
	}
	return v, nil
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts ...ParseOption) (tree.Value, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return tree.Value{}, err
	}
	return Parse(d, opts...)
}

// ParseDiff decodes a serialized libdiff.Diff.
func ParseDiff(d []byte, opts ...ParseOption) (libdiff.Diff, error) {
	pOpts := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return libdiff.Diff{}, ErrEmpty
	}
	switch pOpts.format {
	case format.JSONFormat:
		var res libdiff.Diff
		if err := json.Unmarshal(d, &res); err != nil {
			return libdiff.Diff{}, wrap(err)
		}
		return res, nil
	case format.YAMLFormat:
		res, err := libdiff.DecodeYAML(d)
		if err != nil {
			return libdiff.Diff{}, wrap(err)
		}
		return res, nil
	}
	return libdiff.Diff{}, fmt.Errorf("%w: format %s", errBadOptions, pOpts.format)
}

func decodePlain(d []byte, f format.Format) (any, error) {
	var x any
	switch f {
	case format.JSONFormat:
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		if err := dec.Decode(&x); err != nil {
			return nil, wrap(err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, ErrTrailing
		}
	case format.YAMLFormat:
		if err := yaml.Unmarshal(d, &x); err != nil {
			return nil, wrap(err)
		}
	default:
		return nil, fmt.Errorf("%w: format %s", errBadOptions, f)
	}
	return x, nil
}

func toJSON(d []byte, f format.Format) ([]byte, error) {
	switch f {
	case format.JSONFormat:
		return d, nil
	case format.YAMLFormat:
		j, err := yaml.YAMLToJSON(d)
		if err != nil {
			return nil, wrap(err)
		}
		return j, nil
	}
	return nil, fmt.Errorf("%w: format %s", errBadOptions, f)
}

func wrap(err error) error {
	if errors.Is(err, ErrParse) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}
