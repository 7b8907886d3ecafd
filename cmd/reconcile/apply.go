package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/libdiff"
	"github.com/bitmk2/flocker/tree"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	switch len(args) {
	case 1:
		args = append(args, "-")
	case 2:
	default:
		return fmt.Errorf("%w: apply requires a diff and at most one snapshot", cli.ErrUsage)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: the diff and the snapshot cannot both be stdin", cli.ErrUsage)
	}
	d, err := cfg.readDiff(args[0], cc.In)
	if err != nil {
		return err
	}
	v, err := cfg.readValue(args[1], cc.In)
	if err != nil {
		return err
	}
	return applyDiff(cfg, cc.Out, d, v)
}

func applyDiff(cfg *ApplyConfig, w io.Writer, d libdiff.Diff, v tree.Value) error {
	res, err := d.Apply(v)
	if err != nil {
		var pre *libdiff.PathResolutionError
		if errors.As(err, &pre) {
			theLog.Debug("stale diff", "path", pre.Path.String(), "segment", pre.Index)
		}
		return fmt.Errorf("error applying diff: %w", err)
	}
	theLog.Debug("applied", "changes", d.Len())
	if cfg.Check {
		return nil
	}
	return encode.Encode(res, w, cfg.encOpts(w)...)
}
