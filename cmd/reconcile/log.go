package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logLevel = new(slog.LevelVar)

	theLog = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && w == os.Stderr {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}

// logFile sends the log to a size-rotated file instead of stderr, for
// agents running reconcile periodically.
func (cfg *MainConfig) logFile(_ *cli.Context, a string) (any, error) {
	lj := &lumberjack.Logger{
		Filename:   a,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}
	theLog = newLogger(lj)
	cfg.CloseLog = lj.Close
	return a, nil
}
