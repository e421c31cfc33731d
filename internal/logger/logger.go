// Package logger builds the ECS formatted zap logger used by the service.
package logger

import (
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel accepts debug, info, warn and error. DEVELOPMENT is kept as an
// alias for debug.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, errors.Wrapf(ErrUnknownLevel, "%q", s)
	}
}

func New(level string) (*zap.Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

func NewWithWriter(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := ecszap.NewDefaultEncoderConfig()
	core := ecszap.NewCore(encoderConfig, zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddCaller()), nil
}
