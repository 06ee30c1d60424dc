package log

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

const (
	LevelInfo = iota
	LevelWarn
	LevelError
	LevelDebug
)

var (
	prefixes = []string{
		color.New(color.FgGreen).Sprint("[INFO]") + " ",
		color.New(color.FgYellow).Sprint("[WARN]") + " ",
		color.New(color.FgRed).Sprint("[ERROR]") + " ",
		color.New(color.FgCyan).Sprint("[DEBUG]") + " ",
	}
	globalLogger = NewLogger(LevelInfo, os.Stderr)
)

type Logger struct {
	out     io.Writer
	level   int
	loggers []*log.Logger
}

func NewLogger(level int, out io.Writer) *Logger {
	if level < 0 {
		panic(errors.New("invalid log level"))
	}
	l := &Logger{out: out}
	l.SetLevel(level)
	return l
}

// SetLevel enables every level up to and including level.
func (l *Logger) SetLevel(level int) {
	if level > LevelDebug {
		level = LevelDebug
	}
	l.level = level
	l.loggers = make([]*log.Logger, LevelDebug+1)
	i := 0
	for ; i <= level; i++ {
		if i == LevelInfo {
			l.loggers[i] = log.New(l.out, prefixes[i], log.LstdFlags)
		} else {
			l.loggers[i] = log.New(l.out, prefixes[i], log.LstdFlags|log.Lshortfile)
		}
	}
	for ; i <= LevelDebug; i++ {
		l.loggers[i] = log.New(io.Discard, "", 0)
	}
}

func (l *Logger) Level() int {
	return l.level
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.loggers[LevelInfo].Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.loggers[LevelWarn].Printf(format, args...)
}

func (l *Logger) Error(err error) {
	l.loggers[LevelError].Print(err.Error())
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.loggers[LevelError].Printf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.loggers[LevelDebug].Printf(format, args...)
}

func (l *Logger) SetOutput(out io.Writer) {
	l.out = out
	l.SetLevel(l.level)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

func Error(err error) {
	globalLogger.Error(err)
}

func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

func SetOutput(out io.Writer) {
	globalLogger.SetOutput(out)
}

func SetLevel(level int) {
	globalLogger.SetLevel(level)
}
