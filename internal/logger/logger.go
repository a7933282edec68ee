// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// The long-lived process writes JSON events to `<root>/logs/formgate.log`.
// When running in an interactive TTY the same events are teed, colorized,
// to stdout.  Rotation, compression, and retention are handled by
// Lumberjack; no external log-rotate job is required.
//
// The function-per-request deployment has no writable disk, so it uses
// NewConsole, which writes JSON to stdout only and lets the platform
// collect it.
//
// Notes
// -----
//   - Zap core uses ISO-8601 timestamps and lowercase levels.
//   - The logger is installed process-wide via zap.ReplaceGlobals so
//     zap.S() works everywhere after startup.
package logger

import (
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}

// New returns a *zap.SugaredLogger that writes JSON to logs/formgate.log
// under rootDir.  When tee == true, a colored console core is attached.
func New(rootDir string, tee bool) (*zap.SugaredLogger, error) {
	logDir := filepath.Join(rootDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "formgate.log"),
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encCfg := encoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), zap.InfoLevel),
	}

	if tee {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stdout),
			zap.InfoLevel,
		))
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.ErrorOutput(zapcore.AddSync(fileSink)),
	).Sugar()

	zap.ReplaceGlobals(z.Desugar())
	return z, nil
}

// NewConsole returns a stdout-only JSON logger for environments without a
// writable filesystem.
func NewConsole() *zap.SugaredLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)
	z := zap.New(core).Sugar()
	zap.ReplaceGlobals(z.Desugar())
	return z
}
