// Package logging builds the structured file logger used by the CLI and the
// enhancement service.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger that appends to the file at path.
// An empty path disables logging entirely (returns a nop logger).
// Development mode switches to the readable console encoder.
func New(path string, development bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(logFile), zapcore.InfoLevel)
	return zap.New(core), nil
}
