package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/tree"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	p, err := tree.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid path %q: %w", cli.ErrUsage, args[0], err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		vs, err := cfg.readValues(file, cc.In)
		if err != nil {
			return err
		}
		if err := getValues(cfg, cc.Out, p, vs); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, p, err)
		}
	}
	return nil
}

func getValues(cfg *GetConfig, w io.Writer, p tree.Path, vs []tree.Value) error {
	for _, v := range vs {
		res, err := v.Get(p)
		if err != nil {
			return err
		}
		if err := encode.Encode(res, w, cfg.encOpts(w)...); err != nil {
			return err
		}
	}
	return nil
}
