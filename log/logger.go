package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a small leveled logger shared by the interpreter, the
// dispatcher, and the REPL. It colorizes terminal output and
// optionally mirrors lines into a rotated log file.
type Logger struct {
	writer io.Writer

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

// LoggerRotation configures lumberjack's rotation policy for File.
type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// NewLogger builds a Logger writing at or above level. When file is
// non-empty its output is rotated through lumberjack in addition to
// (or, with noTerminal, instead of) stdout.
func NewLogger(name string, level LogLevel, file string, noTerminal bool) *Logger {
	l := &Logger{
		Name:       name,
		Level:      level,
		File:       file,
		NoTerminal: noTerminal,
		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    64,
			MaxBackups: 5,
			MaxAge:     16,
		},
	}

	l.setupWriter()

	return l
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	if !l.NoTerminal {
		writers = append(writers, os.Stdout)
	}

	if l.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		})
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formatted := fmt.Sprintf(msg, args...)
	prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
	if l.Name != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
	}

	if !l.NoTerminal && !l.NoColor {
		line := Color(level).Sprintf("%s %s", prefix, formatted)
		fmt.Fprintln(l.writer, line)
	} else {
		fmt.Fprintf(l.writer, "%s %s\n", prefix, formatted)
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(Debug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(Info, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(Warn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(Error, msg, args...) }
func (l *Logger) Fatal(msg string, args ...any) { l.log(Fatal, msg, args...) }

// Named returns a child logger sharing this logger's writer, scoped to
// a subsystem (e.g. "binder", "dispatcher", "repl").
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		writer:     l.writer,
		Name:       joinName(l.Name, name),
		Level:      l.Level,
		TimeFormat: l.TimeFormat,
		File:       l.File,
		NoColor:    l.NoColor,
		NoTerminal: l.NoTerminal,
		Rotation:   l.Rotation,
	}
}

func joinName(parent, child string) string {
	if parent == "" {
		return child
	}
	return fmt.Sprintf("%s/%s", parent, child)
}
