package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/parse"
	"github.com/bitmk2/flocker/tree"
)

var docSep = []byte("\n---\n")

// readInput reads file, or in when file is "-".
func readInput(file string, in io.Reader) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

// splitDocs splits a stream of documents separated by "---" lines.
func splitDocs(d []byte) [][]byte {
	d = bytes.TrimPrefix(d, []byte("---\n"))
	var res [][]byte
	for _, doc := range bytes.Split(d, docSep) {
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}
		res = append(res, doc)
	}
	return res
}

func (cfg *MainConfig) readValue(file string, in io.Reader) (tree.Value, error) {
	d, err := readInput(file, in)
	if err != nil {
		return tree.Value{}, err
	}
	v, err := parse.Parse(d, cfg.parseOpts(file, d)...)
	if err != nil {
		return tree.Value{}, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return v, nil
}

func (cfg *MainConfig) readValues(file string, in io.Reader) ([]tree.Value, error) {
	d, err := readInput(file, in)
	if err != nil {
		return nil, err
	}
	docs := splitDocs(d)
	res := make([]tree.Value, len(docs))
	for i, doc := range docs {
		v, err := parse.Parse(doc, cfg.parseOpts(file, doc)...)
		if err != nil {
			return nil, fmt.Errorf("error decoding document %d of %s: %w", i, file, err)
		}
		res[i] = v
	}
	return res, nil
}

func (cfg *MainConfig) readDiff(file string, in io.Reader) (libdiff.Diff, error) {
	d, err := readInput(file, in)
	if err != nil {
		return libdiff.Diff{}, err
	}
	res, err := parse.ParseDiff(d, parse.ParseFormat(cfg.inFormat(file, d)))
	if err != nil {
		return libdiff.Diff{}, fmt.Errorf("error decoding diff %s: %w", file, err)
	}
	return res, nil
}
