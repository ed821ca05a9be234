package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger is the logging seam threaded through the engine. The plain Print
// methods log at info level; Info and Debug return zerolog events for
// structured fields.
type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)

	Info() *zerolog.Event
	Debug() *zerolog.Event
}

type _zeroLogger struct {
	log zerolog.Logger
}

var _ Logger = &_zeroLogger{}

func (l *_zeroLogger) Println(v ...any) {
	l.log.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *_zeroLogger) Printf(format string, v ...any) {
	l.log.Info().Msgf(format, v...)
}
func (l *_zeroLogger) Print(v ...any) {
	l.log.Info().Msg(fmt.Sprint(v...))
}
func (l *_zeroLogger) Info() *zerolog.Event {
	return l.log.Info()
}
func (l *_zeroLogger) Debug() *zerolog.Event {
	return l.log.Debug()
}

// NewLogger writes JSON lines to w.
func NewLogger(w io.Writer) Logger {
	return &_zeroLogger{zerolog.New(w).With().Timestamp().Logger()}
}

// NewConsoleLogger writes human readable lines, colored when f is a terminal.
func NewConsoleLogger(f *os.File) Logger {
	writer := zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    !term.IsTerminal(int(f.Fd())),
		TimeFormat: "15:04:05.000",
	}
	return &_zeroLogger{zerolog.New(writer).With().Timestamp().Logger()}
}

var DefaultLogger = NewConsoleLogger(os.Stderr)

var SilentLogger Logger = &_zeroLogger{zerolog.Nop()}

func SetLogLevel(level string) Error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return Wrap(err)
	}
	zerolog.SetGlobalLevel(parsed)
	return NilError
}

type funcWriter func(message string)

func (f funcWriter) Write(p []byte) (int, error) {
	f(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// FuncLogger forwards every JSON log line to callback.
func FuncLogger(callback func(message string)) Logger {
	return &_zeroLogger{zerolog.New(funcWriter(callback))}
}
