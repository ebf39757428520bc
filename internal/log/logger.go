// Package log builds the zap logger shared by the commands.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugFile receives debug output when debug logging is on. The terminal
// frontend owns stdout, so its logs can only go here.
const DebugFile = "/tmp/venomdocs.log"

// New creates a sugared logger writing to output. Unknown levels fall back to
// info; format is "json" or "console".
func New(level, format string, output io.Writer) *zap.SugaredLogger {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		atomicLevel.SetLevel(zapcore.InfoLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(format) {
	case "console", "text":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), atomicLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Sugar()
}

// Open returns the logger for a command. With debug set, everything down to
// debug level goes to DebugFile; otherwise level/format apply to output.
// The returned func closes any file that was opened.
func Open(level, format string, debug bool, output io.Writer) (*zap.SugaredLogger, func(), error) {
	if !debug {
		return New(level, format, output), func() {}, nil
	}
	f, err := os.OpenFile(DebugFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	l := New("debug", format, f)
	return l, func() {
		_ = l.Sync()
		_ = f.Close()
	}, nil
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
