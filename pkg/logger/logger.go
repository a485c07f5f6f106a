package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a console logger writing to stdout. Unknown levels fall
// back to info.
func NewLogger(level string) *zapLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		parseLevel(level),
	)

	return &zapLogger{sugar: zap.New(core).Sugar()}
}

func NewNopLogger() *zapLogger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *zapLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *zapLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *zapLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "silence":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
