package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger with an adjustable level.
type Logger struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
}

const defaultZapLevel = zapcore.InfoLevel

// toZapLevel maps a level name to zapcore.Level. Unknown names fall back to info.
func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(w io.Writer, level zap.AtomicLevel) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
}

func newZapLogger(levelStr string) *Logger {
	return New(os.Stdout, levelStr)
}

// New builds a console logger writing to w.
func New(w io.Writer, levelStr string) *Logger {
	level := zap.NewAtomicLevelAt(toZapLevel(levelStr))
	return &Logger{
		SugaredLogger: zap.New(newConsoleCore(w, level)).Sugar(),
		level:         level,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		level:         zap.NewAtomicLevelAt(zapcore.FatalLevel),
	}
}

// SetLevel changes the minimum enabled level at runtime.
func (l *Logger) SetLevel(levelStr string) {
	l.level.SetLevel(toZapLevel(levelStr))
}

// Level reports the current minimum enabled level name.
func (l *Logger) Level() string {
	return l.level.Level().String()
}
