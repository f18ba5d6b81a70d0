// Package logging builds the zap loggers used by the program. The TUI owns
// the terminal, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kerbaras/starwarspedia/pkg/config"
)

// New returns a JSON logger writing to cfg.File at cfg.Level. An empty file
// logs to stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
	}
	return zcfg.Build(zap.AddCaller())
}

func Nop() *zap.Logger {
	return zap.NewNop()
}

// ErrorObserver reports fetch failures to a logger.
type ErrorObserver struct {
	log *zap.Logger
}

func NewErrorObserver(log *zap.Logger) *ErrorObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ErrorObserver{log: log}
}

func (o *ErrorObserver) LogError(context string, err error) {
	o.log.Error("fetch failed", zap.String("context", context), zap.Error(err))
}
