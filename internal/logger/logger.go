package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

const (
	logEnvKey       = "LOG_ENV"
	logLevelKey     = "LOG_LEVEL"
	defaultLogEnv   = "prod"
	defaultLogLevel = "warn"
)

var logger *zap.Logger

func init() {
	l, err := fromEnv()
	if err != nil {
		log.Fatal("logger init: ", err)
	}
	logger = l
}

// fromEnv builds a logger from LOG_ENV and LOG_LEVEL, falling back to the
// defaults when they are invalid. Reload reports the invalid values.
func fromEnv() (*zap.Logger, error) {
	l, err := build(os.Getenv(logEnvKey), os.Getenv(logLevelKey))
	if err == nil {
		return l, nil
	}
	return build("", "")
}

// Reload rebuilds the package logger from LOG_ENV and LOG_LEVEL.
// Call it after environment variables were changed, e.g. by loading a .env file.
func Reload() error {
	l, err := build(os.Getenv(logEnvKey), os.Getenv(logLevelKey))
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func build(env, level string) (*zap.Logger, error) {
	if env == "" {
		env = defaultLogEnv
	}
	if level == "" {
		level = defaultLogLevel
	}

	var cfg zap.Config
	switch env {
	case "dev":
		cfg = zap.NewDevelopmentConfig()
	case "prod":
		cfg = zap.NewProductionConfig()
	default:
		return nil, errUnknownEnv(env)
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl

	return cfg.Build()
}

type errUnknownEnv string

func (e errUnknownEnv) Error() string {
	return "unknown " + logEnvKey + " value " + string(e)
}

// Replace swaps the package logger, returning a func that restores the previous one.
func Replace(l *zap.Logger) func() {
	prev := logger
	logger = l
	return func() { logger = prev }
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

// Sync flushes buffered entries; call before the process exits.
func Sync() {
	_ = logger.Sync()
}
