package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Format is the text encoding of a snapshot or diff document.
type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

type descriptor struct {
	name    string
	aliases []string
	exts    []string
	media   string
}

var descriptors = [...]descriptor{
	YAMLFormat: {
		name:    "yaml",
		aliases: []string{"y", "yml"},
		exts:    []string{".yaml", ".yml"},
		media:   "application/yaml",
	},
	JSONFormat: {
		name:    "json",
		aliases: []string{"j"},
		exts:    []string{".json"},
		media:   "application/json",
	},
}

func (f Format) desc() (descriptor, bool) {
	if f < 0 || int(f) >= len(descriptors) {
		return descriptor{}, false
	}
	return descriptors[f], true
}

// ParseFormat reads a format name or alias, ignoring case.
func ParseFormat(v string) (Format, error) {
	v = strings.ToLower(v)
	for _, f := range AllFormats() {
		d := descriptors[f]
		if v == d.name || slices.Contains(d.aliases, v) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath returns the format implied by a file name's extension.
func FromPath(p string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(p))
	if ext == "" {
		return 0, false
	}
	for _, f := range AllFormats() {
		if slices.Contains(descriptors[f].exts, ext) {
			return f, true
		}
	}
	return 0, false
}

// Detect guesses the format of a document with no file name to go by.
// Only a complete JSON object or array is JSON; flow style YAML such as
// {a: 1} and multi-document streams are YAML.
func Detect(d []byte) Format {
	t := bytes.TrimSpace(d)
	if len(t) == 0 || (t[0] != '{' && t[0] != '[') {
		return YAMLFormat
	}
	if json.Valid(t) {
		return JSONFormat
	}
	return YAMLFormat
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	d, ok := f.desc()
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(d.name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix is the preferred file extension, with the dot.
func (f Format) Suffix() string {
	d, _ := f.desc()
	if len(d.exts) == 0 {
		return ""
	}
	return d.exts[0]
}

// MediaType is the IANA media type of documents in f.
func (f Format) MediaType() string {
	d, _ := f.desc()
	return d.media
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{YAMLFormat, JSONFormat}
}
