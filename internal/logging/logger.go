// Package logging builds the zap loggers used by the specdiff binaries and
// adapts them to parser.Logger for the library packages.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/erraggy/specdiff/internal/config"
	"github.com/erraggy/specdiff/parser"
)

// ParseLevel maps a level name to a zap level. Unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New creates a zap logger writing to stderr, tee'd to a rotated file when
// cfg.File is set.
func New(cfg config.LogConfig) *zap.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a zap logger writing to w, tee'd to a rotated file
// when cfg.File is set.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.CompressLogs,
		}
		core = zapcore.NewTee(core, zapcore.NewCore(enc.Clone(), zapcore.AddSync(rotated), level))
	}
	return zap.New(core)
}

// ZapAdapter implements parser.Logger over a zap SugaredLogger.
type ZapAdapter struct {
	logger *zap.SugaredLogger
}

// NewZapAdapter wraps l for use with parser, differ, and friends.
func NewZapAdapter(l *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: l.Sugar()}
}

// Debug implements parser.Logger.
func (z *ZapAdapter) Debug(msg string, attrs ...any) {
	z.logger.Debugw(msg, attrs...)
}

// Info implements parser.Logger.
func (z *ZapAdapter) Info(msg string, attrs ...any) {
	z.logger.Infow(msg, attrs...)
}

// Warn implements parser.Logger.
func (z *ZapAdapter) Warn(msg string, attrs ...any) {
	z.logger.Warnw(msg, attrs...)
}

// Error implements parser.Logger.
func (z *ZapAdapter) Error(msg string, attrs ...any) {
	z.logger.Errorw(msg, attrs...)
}

// With implements parser.Logger.
func (z *ZapAdapter) With(attrs ...any) parser.Logger {
	return &ZapAdapter{logger: z.logger.With(attrs...)}
}

var _ parser.Logger = (*ZapAdapter)(nil)
