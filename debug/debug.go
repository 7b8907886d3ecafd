package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Diff   bool
	Apply  bool
	Schema bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("RECONCILE_DEBUG_DIFF")
	d.Apply = boolEnv("RECONCILE_DEBUG_APPLY")
	d.Schema = boolEnv("RECONCILE_DEBUG_SCHEMA")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// EnableAll turns on every debug switch, regardless of the environment.
func EnableAll() {
	d.Diff = true
	d.Apply = true
	d.Schema = true
}

func Diff() bool {
	return d.Diff
}
func Apply() bool {
	return d.Apply
}
func Schema() bool {
	return d.Schema
}
