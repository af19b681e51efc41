package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "cafe-pos"

var log *zap.Logger

// Init builds the global logger for env at the given level ("debug", "info",
// ...). An empty or unknown level keeps the environment's default.
func Init(env, level string) {
	log = build(env, level)
}

func build(env, level string) *zap.Logger {
	cfg := newConfig(env)
	if lvl, err := zapcore.ParseLevel(level); err == nil && level != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	built, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	return built.With(zap.String("service", serviceName))
}

// newConfig logs JSON to stdout in production and to a colored console
// everywhere else.
func newConfig(env string) zap.Config {
	if env != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	return cfg
}

// L returns the global logger, building it from APP_ENV and LOG_LEVEL on first use.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	}
	return log
}

// Use replaces the global logger and returns a func restoring the previous one.
func Use(l *zap.Logger) (restore func()) {
	previous := log
	log = l
	return func() { log = previous }
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
