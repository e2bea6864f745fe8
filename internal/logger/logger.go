package logger

import (
	"os"

	"go-minimart/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger and installs it as the zap global.
// With console set, development output also goes to stderr; otherwise only
// the rotated log file is written, which keeps the interactive menu clean.
func New(cfg *config.Config, console bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, err
		}
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if cfg.LogMode == "production" {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	var cores []zapcore.Core
	if cfg.LogFile != "" {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    16,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   false,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			level,
		))
	}
	if console || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(logger)
	return logger, nil
}
