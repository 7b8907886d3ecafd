package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/tree"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		vs, err := cfg.readValues(file, cc.In)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := viewValues(cfg, cc.Out, vs); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func viewValues(cfg *ViewConfig, w io.Writer, vs []tree.Value) error {
	opts := cfg.encOpts(w)
	for i, v := range vs {
		if i > 0 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
		if err := encode.Encode(v, w, opts...); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
	}
	return nil
}
