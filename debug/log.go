package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitmk2/flocker/tree"
)

var out io.Writer = os.Stderr

// SetOutput redirects debug output, which goes to stderr by default.
func SetOutput(w io.Writer) {
	out = w
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case tree.Value:
			args[i] = x.String()
		case tree.Path:
			args[i] = "'" + x.String() + "'"
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
