// Package logging builds the process-wide slog logger. When a log file is
// configured output goes through lumberjack for size-based rotation,
// otherwise it is plain JSON on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON slog.Logger. An empty path logs to stdout.
func New(path string) *slog.Logger {
	var w io.Writer = os.Stdout
	if path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	return slog.New(slog.NewJSONHandler(w, nil))
}
