package encode

import (
	"github.com/bitmk2/flocker/format"
	"github.com/bitmk2/flocker/tree"
)

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// EncodeTagged selects the tagged value encoding, see tree.Value.MarshalJSON.
func EncodeTagged(v bool) EncodeOption {
	return func(es *EncState) { es.tagged = v }
}

// EncodeIndent sets the JSON indentation; 0 gives compact output.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeBase gives EncodeDiff the snapshot the diff applies to, so that
// replaced values can be shown next to their replacements.
func EncodeBase(v tree.Value) EncodeOption {
	return func(es *EncState) { es.base = &v }
}

// EncodeStrDiff renders replaced strings as character level edits when the
// base is known.
func EncodeStrDiff(v bool) EncodeOption {
	return func(es *EncState) { es.strDiff = v }
}
