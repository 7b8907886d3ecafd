package parse

import (
	"github.com/bitmk2/flocker/format"
)

type parseOpts struct {
	format format.Format
	tagged bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseTagged selects the tagged value encoding, which keeps ints, floats,
// sets and record types distinct. The default is the plain encoding, see
// tree.FromAny.
func ParseTagged(v bool) ParseOption {
	return func(o *parseOpts) { o.tagged = v }
}
