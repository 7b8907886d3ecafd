package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/bitmk2/flocker/tree"
)

func types(cfg *TypesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Types.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: types takes no arguments", cli.ErrUsage)
	}
	return listTypes(cc.Out, tree.RegisteredTypes())
}

func listTypes(w io.Writer, rts []*tree.RecordType) error {
	for _, rt := range rts {
		if _, err := fmt.Fprintf(w, "%s\n", rt.Name()); err != nil {
			return err
		}
		for _, f := range rt.Fields() {
			var attrs []string
			if f.Kind != tree.AnyKind && f.Kind != tree.NullKind {
				attrs = append(attrs, f.Kind.String())
			}
			if f.Mandatory {
				attrs = append(attrs, "mandatory")
			}
			ln := "\tfield " + f.Name
			if len(attrs) != 0 {
				ln += " (" + strings.Join(attrs, ", ") + ")"
			}
			if _, err := fmt.Fprintln(w, ln); err != nil {
				return err
			}
		}
		for _, inv := range rt.Invariants() {
			ln := "\tinvariant " + inv.Name
			if inv.Expr != "" {
				ln += ": " + inv.Expr
			}
			if _, err := fmt.Fprintln(w, ln); err != nil {
				return err
			}
		}
	}
	return nil
}
