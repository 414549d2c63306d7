// Package logger 提供基于 zerolog 的日志初始化
//
// 所有组件共用一个根 logger，通过 Component 派生带 component 字段的子 logger
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 创建写入 writer 的 logger
func New(writer io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole 创建输出到 stderr 的可读格式 logger
// verbose 为 true 时输出 Debug 级别日志，否则为 Info
func NewConsole(verbose bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return New(consoleWriter, Level(verbose))
}

// Level 根据 verbose 标志返回日志级别
func Level(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Component 派生带 component 字段的子 logger
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
