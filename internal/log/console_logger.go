package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleLogger 基于 zerolog 的控制台日志
type ConsoleLogger struct {
	zl zerolog.Logger
}

// NewConsoleLogger 输出到标准输出的控制台日志
func NewConsoleLogger() *ConsoleLogger {
	return NewWriterLogger(os.Stdout)
}

// NewWriterLogger 输出到 w 的控制台日志
func NewWriterLogger(w io.Writer) *ConsoleLogger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return &ConsoleLogger{zl: zerolog.New(out).With().Timestamp().Logger()}
}

func (c *ConsoleLogger) Debug(args ...any) {
	c.zl.Debug().Msg(FormatArgs(args...))
}

func (c *ConsoleLogger) Info(args ...any) {
	c.zl.Info().Msg(FormatArgs(args...))
}

func (c *ConsoleLogger) Error(args ...any) {
	c.zl.Error().Msg(FormatArgs(args...))
}

func (c *ConsoleLogger) Fatal(args ...any) {
	c.zl.Fatal().Msg(FormatArgs(args...))
}
