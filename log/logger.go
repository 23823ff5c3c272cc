package log // import "github.com/libris-io/libris/log"

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/libris-io/libris/config"
)

var Logger *zap.Logger

func init() {
	Logger = NewLogger()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Fallback logs a preformatted message through the sugared logger.
func Fallback(level string, msg string) {
	sugar := Logger.Sugar()
	switch level {
	case "Debug":
		sugar.Debug(msg)
	case "Warn":
		sugar.Warn(msg)
	case "Error":
		sugar.Error(msg)
	default:
		sugar.Info(msg)
	}
}

// NewLogger builds the logger from config.Opts, falling back to defaults
// when the config is not loaded yet.
func NewLogger() *zap.Logger {
	filename := "libris.log"
	level := "info"
	maxSize := 20
	maxBackups := 3
	maxAge := 28
	compress := false
	if config.Opts != nil {
		filename = config.Opts.LogFile
		level = config.Opts.LogLevel
		maxSize = config.Opts.LogFileMaxSize
		maxBackups = config.Opts.LogFileMaxBackups
		maxAge = config.Opts.LogFileMaxAge
		compress = config.Opts.LogCompress
	}

	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
		MaxAge:     maxAge, // days
		Compress:   compress,
	}

	return newZap(rotationLog, parseLevel(level))
}

func parseLevel(level string) zapcore.Level {
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		return parsed
	}
	return zapcore.InfoLevel
}

func newZap(rotationLog *lumberjack.Logger, level zapcore.Level) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(config)
	consoleEncoder := zapcore.NewConsoleEncoder(config)

	consoleWriter := zapcore.AddSync(os.Stdout)
	rotationWrite := zapcore.AddSync(rotationLog)

	consoleCore := zapcore.NewCore(consoleEncoder, consoleWriter, level)
	rotationCore := zapcore.NewCore(fileEncoder, rotationWrite, level)

	core := zapcore.NewTee(consoleCore, rotationCore)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}
