package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/libdiff"
)

func compose(cfg *ComposeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compose.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: compose requires at least one diff", cli.ErrUsage)
	}
	diffs, err := cfg.readDiffs(args, cc.In)
	if err != nil {
		return err
	}
	return composeDiffs(cfg, cc.Out, diffs)
}

// readDiffs decodes files concurrently, keeping their order.
func (cfg *ComposeConfig) readDiffs(files []string, in io.Reader) ([]libdiff.Diff, error) {
	stdin := 0
	for _, file := range files {
		if file == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, fmt.Errorf("%w: stdin given %d times", cli.ErrUsage, stdin)
	}
	diffs := make([]libdiff.Diff, len(files))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		group.Go(func() error {
			d, err := cfg.readDiff(file, in)
			if err != nil {
				return err
			}
			diffs[i] = d
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return diffs, nil
}

func composeDiffs(cfg *ComposeConfig, w io.Writer, diffs []libdiff.Diff) error {
	d, err := libdiff.Compose(diffs...)
	if err != nil {
		return err
	}
	theLog.Debug("composed", "diffs", len(diffs), "changes", d.Len())
	return encode.EncodeDiffDoc(d, w, cfg.encOpts(w)...)
}
