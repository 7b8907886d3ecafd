package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments, got %d", cli.ErrUsage, len(args))
	}
	if count(cfg.Plain, cfg.JSONPatch) > 1 {
		return fmt.Errorf("%w: -plain and -jsonpatch are exclusive", cli.ErrUsage)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one of a and b may be stdin", cli.ErrUsage)
	}
	a, err := cfg.readValue(args[0], cc.In)
	if err != nil {
		return err
	}
	b, err := cfg.readValue(args[1], cc.In)
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	return diffValues(cfg, cc.Out, a, b)
}

func diffValues(cfg *DiffConfig, w io.Writer, a, b tree.Value) error {
	d := libdiff.Create(a, b)
	theLog.Debug("diff", "changes", d.Len(), "replacement", d.IsReplacement())
	switch {
	case cfg.JSONPatch:
		patch, err := libdiff.JSONPatch(d, a)
		if err != nil {
			return err
		}
		out, err := json.Marshal(patch)
		if cfg.Indent > 0 {
			out, err = json.MarshalIndent(patch, "", fmt.Sprintf("%*s", cfg.Indent, ""))
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	case cfg.Plain:
		opts := cfg.encOpts(w)
		opts = append(opts, encode.EncodeBase(a), encode.EncodeStrDiff(cfg.StrDiff))
		return encode.EncodeDiff(d, w, opts...)
	}
	opts := append(cfg.encOpts(w), encode.EncodeIndent(cfg.Indent))
	return encode.EncodeDiffDoc(d, w, opts...)
}
