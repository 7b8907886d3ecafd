package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmk2/flocker/encode"
	"github.com/bitmk2/flocker/format"
	"github.com/bitmk2/flocker/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Tagged  bool `cli:"name=tagged desc='read and write snapshots in the tagged encoding'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debugging information'"`
	Gops    bool `cli:"name=gops desc='start a gops diagnostics agent'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	TypeFiles []string

	Out      string
	CloseOut func() error
	CloseLog func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) typesOpt(_ *cli.Context, a string) (any, error) {
	cfg.TypeFiles = append(cfg.TypeFiles, a)
	return a, nil
}

// inFormat gives the format to read file in: -I, then -j/-y, then the file
// extension, then the content of d.
func (cfg *MainConfig) inFormat(file string, d []byte) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	}
	if f, ok := format.FromPath(file); ok {
		return f
	}
	return format.Detect(d)
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	return format.YAMLFormat
}

func (cfg *MainConfig) parseOpts(file string, d []byte) []parse.ParseOption {
	f := cfg.inFormat(file, d)
	theLog.Debug("decoding", "file", file, "media", f.MediaType())
	return []parse.ParseOption{
		parse.ParseFormat(f),
		parse.ParseTagged(cfg.Tagged),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeTagged(cfg.Tagged),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool `cli:"name=r desc='reverse the diff'"`
	Plain     bool `cli:"name=plain desc='one line per change, for reading'"`
	StrDiff   bool `cli:"name=strdiff desc='with -plain, show replaced strings as character edits'"`
	JSONPatch bool `cli:"name=jsonpatch desc='output an RFC 6902 JSON patch'"`
	Indent    int  `cli:"name=indent desc='json indentation, 0 for compact'"`

	Diff *cli.Command
}

type ApplyConfig struct {
	*MainConfig
	Check bool `cli:"name=check desc='only check that the diff applies'"`

	Apply *cli.Command
}

type ComposeConfig struct {
	*MainConfig

	Compose *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type TypesConfig struct {
	*MainConfig

	Types *cli.Command
}
