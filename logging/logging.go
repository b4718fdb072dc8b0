// Package logging builds the phuslu loggers used by the converter and the
// command line tool.
//
// Lines look like
//
//	2024-05-01 12:00:00,123 - WARNING: Column 'Name' could not be converted: ... file=a.pdf
//
// and go to stderr and to a log file opened in append mode.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// DefaultFile is the log file name used when none is configured.
const DefaultFile = "pdf_conversion.log"

// TimeFormat renders timestamps with comma-separated milliseconds.
const TimeFormat = "2006-01-02 15:04:05,000"

// Options configures New.
type Options struct {
	Level   string    // debug, info, warn or error; empty means info
	File    string    // log file path; empty disables the file sink
	Console io.Writer // console sink; nil means os.Stderr
}

// Logger is a phuslu logger plus the file it writes to, if any.
type Logger struct {
	*log.Logger
	file *os.File
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// New creates a logger writing formatted lines to the console and, when
// opts.File is set, appending them to that file.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := log.MultiEntryWriter{&log.ConsoleWriter{Formatter: Format, Writer: console}}

	var file *os.File
	if opts.File != "" {
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, &log.ConsoleWriter{Formatter: Format, Writer: file})
	}

	return &Logger{
		Logger: &log.Logger{
			Level:      level,
			TimeFormat: TimeFormat,
			Writer:     &writers,
		},
		file: file,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// ParseLevel maps a configured level name to a phuslu level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Format renders one entry as "time - LEVEL: message key=value ...".
func Format(w io.Writer, a *log.FormatterArgs) (int, error) {
	var b strings.Builder
	b.WriteString(a.Time)
	b.WriteString(" - ")
	b.WriteString(levelName(a.Level))
	b.WriteString(": ")
	b.WriteString(a.Message)
	for _, kv := range a.KeyValues {
		b.WriteByte(' ')
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	b.WriteByte('\n')
	return io.WriteString(w, b.String())
}

func levelName(level string) string {
	switch level {
	case "warn":
		return "WARNING"
	case "":
		return "INFO"
	default:
		return strings.ToUpper(level)
	}
}
