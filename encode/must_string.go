package encode

import (
	"bytes"
	"strings"

	"github.com/bitmk2/flocker/tree"
)

func MustString(v tree.Value, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
