package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/bitmk2/flocker/tree"
)

type Colorable struct {
	Kind tree.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	KeyColor
	SepColor
	PathColor
	RemoveColor
	SetColor
	AddColor
	DeleteTextColor
	InsertTextColor
)

// Colors maps kinds and attributes to terminal colors. Text without an
// entry is left as is.
type Colors struct {
	Map map[Colorable]*color.Color
}

func NewColors() *Colors {
	colors := &Colors{Map: map[Colorable]*color.Color{}}
	for _, k := range tree.Kinds() {
		colors.Map[Colorable{Kind: k, Attr: SepColor}] = color.RGB(255, 0, 196)
		colors.Map[Colorable{Kind: k, Attr: KeyColor}] = color.RGB(128, 168, 196)
	}
	able := Colorable{Attr: ValueColor}
	able.Kind = tree.NullKind
	colors.Map[able] = color.RGB(168, 0, 196)
	able.Kind = tree.BoolKind
	colors.Map[able] = color.New(color.FgCyan)
	able.Kind = tree.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236)
	able.Kind = tree.StringKind
	colors.Map[able] = color.RGB(8, 196, 16)
	able.Kind = tree.RecordKind
	colors.Map[able] = color.RGB(196, 96, 16)

	able.Kind = tree.AnyKind
	able.Attr = PathColor
	colors.Map[able] = color.RGB(74, 92, 138)
	able.Attr = RemoveColor
	colors.Map[able] = color.New(color.FgRed, color.Bold)
	able.Attr = SetColor
	colors.Map[able] = color.New(color.FgYellow, color.Bold)
	able.Attr = AddColor
	colors.Map[able] = color.New(color.FgGreen, color.Bold)
	able.Attr = DeleteTextColor
	colors.Map[able] = color.New(color.FgRed, color.CrossedOut)
	able.Attr = InsertTextColor
	colors.Map[able] = color.New(color.FgGreen, color.Underline)
	return colors
}

func (c *Colors) Color(k tree.Kind, a ColorAttr, s string) string {
	f := c.Get(k, a)
	if f == nil {
		return s
	}
	return f.Sprint(s)
}

func (c *Colors) Get(k tree.Kind, a ColorAttr) *color.Color {
	return c.Map[Colorable{Kind: k, Attr: a}]
}

// escapes returns the control sequences with which the color for k and a
// surrounds text.
func (c *Colors) escapes(k tree.Kind, a ColorAttr) (prefix, suffix string) {
	f := c.Get(k, a)
	if f == nil {
		return "", ""
	}
	prefix, suffix, _ = strings.Cut(f.Sprint("\x00"), "\x00")
	return prefix, suffix
}
