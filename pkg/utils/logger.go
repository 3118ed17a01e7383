package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the service logger. Every entry carries the app name and
// goes to stdout and to a rotating <app>.log under the configured log path.
func InitLogger(config AppConfig) (*zap.Logger, error) {
	if config.LogPath != "" {
		if err := os.MkdirAll(config.LogPath, 0755); err != nil {
			return nil, err
		}
	}

	name := config.Name
	if name == "" {
		name = "airline-api"
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if config.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// The file stays JSON; stdout switches to console output in debug.
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	stdoutEncoder := fileEncoder
	if config.Debug {
		stdoutEncoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(config.LogPath, name+".log"),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, file, level),
		zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), level),
	)

	return zap.New(core, zap.AddCaller(), zap.Fields(zap.String("app", name))), nil
}
