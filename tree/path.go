package tree

import (
	"fmt"
	"strconv"
	"strings"
)

type SegmentKind int

const (
	// FieldSegment addresses a record field by name.
	FieldSegment SegmentKind = iota
	// KeySegment addresses a mapping entry by key.
	KeySegment
	// MemberSegment addresses an element of a set by the element itself.
	MemberSegment
)

func (k SegmentKind) String() string {
	switch k {
	case FieldSegment:
		return "field"
	case KeySegment:
		return "key"
	case MemberSegment:
		return "member"
	default:
		return "<unknown segment>"
	}
}

// Segment is one step of a Path.
type Segment struct {
	Kind SegmentKind
	Name string // FieldSegment
	Key  Value  // KeySegment, MemberSegment
}

func Field(name string) Segment { return Segment{Kind: FieldSegment, Name: name} }
func Key(k Value) Segment       { return Segment{Kind: KeySegment, Key: k} }
func Member(v Value) Segment    { return Segment{Kind: MemberSegment, Key: v} }

// StringKey is Key(FromString(k)).
func StringKey(k string) Segment { return Key(FromString(k)) }

// Item returns the value a container operation uses to address this
// segment: the field name as a string, the mapping key or the set element.
func (s Segment) Item() Value {
	if s.Kind == FieldSegment {
		return FromString(s.Name)
	}
	return s.Key
}

func (s Segment) Equal(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == FieldSegment {
		return s.Name == o.Name
	}
	return Equal(s.Key, o.Key)
}

// String returns the segment in path syntax, without a leading '.' for
// fields.
func (s Segment) String() string {
	switch s.Kind {
	case FieldSegment:
		if isIdent(s.Name) {
			return s.Name
		}
		return strconv.Quote(s.Name)
	case KeySegment:
		return "[" + s.Key.String() + "]"
	case MemberSegment:
		return "{" + s.Key.String() + "}"
	}
	return ""
}

// Path locates a value inside a tree. The empty path denotes the root.
//
// The text form joins fields with '.', puts mapping keys in brackets and set
// members in braces:
//
//	nodes["node-1"].applications{"web"}.ports
type Path []Segment

// Append returns a new path; p is never modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

// Parent returns p without its last segment. The root has no parent and
// is returned as is.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[: len(p)-1 : len(p)-1]
}

// Last returns the final segment of a non-empty path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.Kind == FieldSegment && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses the text form of a path. Keys and members must be
// scalars: null, true, false, numbers, or double quoted strings.
func ParsePath(s string) (Path, error) {
	var res Path
	i := 0
	if strings.HasPrefix(s, ".") {
		i = 1
	}
	first := true
	for i < len(s) {
		c := s[i]
		switch {
		case c == '[' || c == '{':
			closer := byte(']')
			kind := KeySegment
			if c == '{' {
				closer = '}'
				kind = MemberSegment
			}
			v, n, err := parseScalar(s[i+1:], closer)
			if err != nil {
				return nil, fmt.Errorf("path %q at %d: %w", s, i, err)
			}
			res = append(res, Segment{Kind: kind, Key: v})
			i += n + 2
		case c == '.' && !first:
			i++
			name, n, err := parseFieldName(s[i:])
			if err != nil {
				return nil, fmt.Errorf("path %q at %d: %w", s, i, err)
			}
			res = append(res, Field(name))
			i += n
		case first:
			name, n, err := parseFieldName(s[i:])
			if err != nil {
				return nil, fmt.Errorf("path %q at %d: %w", s, i, err)
			}
			res = append(res, Field(name))
			i += n
		default:
			return nil, fmt.Errorf("path %q at %d: unexpected %q", s, i, c)
		}
		first = false
	}
	return res, nil
}

func parseFieldName(s string) (string, int, error) {
	if strings.HasPrefix(s, `"`) {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", 0, err
		}
		name, err := strconv.Unquote(q)
		if err != nil {
			return "", 0, err
		}
		return name, len(q), nil
	}
	n := 0
	for n < len(s) && isIdentByte(s[n]) {
		n++
	}
	if n == 0 {
		return "", 0, fmt.Errorf("expected field name")
	}
	return s[:n], n, nil
}

// parseScalar parses a scalar followed by closer and returns the value and
// the number of bytes consumed, not counting closer.
func parseScalar(s string, closer byte) (Value, int, error) {
	if strings.HasPrefix(s, `"`) {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return Value{}, 0, err
		}
		if len(q) == len(s) || s[len(q)] != closer {
			return Value{}, 0, fmt.Errorf("expected %q after %s", closer, q)
		}
		str, err := strconv.Unquote(q)
		if err != nil {
			return Value{}, 0, err
		}
		return FromString(str), len(q), nil
	}
	end := strings.IndexByte(s, closer)
	if end < 0 {
		return Value{}, 0, fmt.Errorf("missing %q", closer)
	}
	v, err := ParseScalar(s[:end])
	if err != nil {
		return Value{}, 0, err
	}
	return v, end, nil
}

// ParseScalar parses a literal null, boolean or number.
func ParseScalar(lit string) (Value, error) {
	switch lit {
	case "null":
		return Null(), nil
	case "true":
		return FromBool(true), nil
	case "false":
		return FromBool(false), nil
	}
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return FromInt(i), nil
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return FromFloat(f), nil
	}
	return Value{}, fmt.Errorf("invalid scalar %q", lit)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' || c == '$' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
