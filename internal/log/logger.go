// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// This package implements a hierarchical logger which allows adding prefixes.

type Logger struct {
	// Internal logger
	zerolog.Logger

	// The current prefix
	prefix string

	level zerolog.Level
	out   io.Writer
}

// NewLogger returns a console logger writing to stderr at the given level.
// Unknown levels fall back to info.
func NewLogger(rawLevel string) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(rawLevel))
	if err != nil || rawLevel == "" {
		level = zerolog.InfoLevel
	}

	return newLoggerWithPrefix(os.Stderr, level, "")
}

// NewWriterLogger is NewLogger with an explicit destination.
func NewWriterLogger(out io.Writer, level zerolog.Level) *Logger {
	return newLoggerWithPrefix(out, level, "")
}

// NewNopLogger discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		Logger: zerolog.Nop(),
		level:  zerolog.Disabled,
		out:    io.Discard,
	}
}

func newLoggerWithPrefix(out io.Writer, level zerolog.Level, prefix string) *Logger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("%s%s", i, prefix))
	}
	log := zerolog.New(output).Level(level).With().Timestamp().Logger()

	return &Logger{
		Logger: log,
		prefix: prefix,
		level:  level,
		out:    out,
	}
}

func (l *Logger) ApplyPrefix(additionalPrefix string) *Logger {
	if l.level == zerolog.Disabled {
		return l
	}
	newPrefix := fmt.Sprintf("%s%s", l.prefix, additionalPrefix)

	return newLoggerWithPrefix(l.out, l.level, newPrefix)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
