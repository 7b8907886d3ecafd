package tree

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Invariant is a predicate over a whole record, checked each time a record
// of its type is constructed or an evolver of one is made persistent.
//
// An invariant is either a Go check or an expression over the record's
// declared fields, where unset fields are nil and containers are presented
// in their plain form (see ToAny):
//
//	primary_ip == nil || len(applications) > 0
type Invariant struct {
	Name string
	Expr string

	fn      func(rec Value) error
	program *vm.Program
}

// CheckInvariant returns an invariant backed by a Go function.
func CheckInvariant(name string, f func(rec Value) error) *Invariant {
	return &Invariant{Name: name, fn: f}
}

// ExprInvariant compiles src into an invariant. src must evaluate to a
// boolean.
func ExprInvariant(name, src string) (*Invariant, error) {
	prg, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invariant %s: %w", name, err)
	}
	return &Invariant{Name: name, Expr: src, program: prg}, nil
}

// MustExprInvariant is like ExprInvariant but panics on error.
func MustExprInvariant(name, src string) *Invariant {
	inv, err := ExprInvariant(name, src)
	if err != nil {
		panic(err)
	}
	return inv
}

func (inv *Invariant) check(rec Value) error {
	if inv.fn != nil {
		return inv.fn(rec)
	}
	env := make(map[string]any, len(rec.rtype.fields))
	for _, f := range rec.rtype.fields {
		env[f.Name] = nil
	}
	for i, k := range rec.keys {
		env[k.str] = ToAny(rec.vals[i])
	}
	res, err := vm.Run(inv.program, env)
	if err != nil {
		return err
	}
	ok, isBool := res.(bool)
	if !isBool {
		return fmt.Errorf("expression %q gave %T, not bool", inv.Expr, res)
	}
	if !ok {
		return errors.New("expression " + inv.Expr + " is false")
	}
	return nil
}
