// Package logging configures the process-wide zerolog logger: console output
// for interactive use, JSON elsewhere, and an optional rotating file for the
// daemon.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	Verbose bool   // debug level instead of info
	LogFile string // when set, also write JSON logs to this rotating file
}

// Setup builds and installs the global logger and returns it.
func Setup(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	var writer io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	if opts.LogFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		writer = zerolog.MultiLevelWriter(writer, rotating)
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	zerolog.DefaultContextLogger = &logger
	return logger
}
