// Package log provides the process-wide debug logger. Logging is
// off by default and enabled with SESSIONSCOUT_DEBUG=1, writing
// rotated files under ~/.sessionscout so scanner noise never
// reaches stdout of consumers.
package log

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Init configures the logger. Safe to call more than once; later
// calls are no-ops. Without SESSIONSCOUT_DEBUG=1 the logger stays
// a nop.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil && logger.Core().Enabled(zapcore.DebugLevel) {
		return nil
	}
	if os.Getenv("SESSIONSCOUT_DEBUG") != "1" {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	logDir := filepath.Join(home, ".sessionscout")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	ws := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "debug.log"),
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg), ws, zapcore.DebugLevel,
	)
	logger = zap.New(core)
	return nil
}

// L returns the current logger.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Sync flushes buffered entries. Called on process exit.
func Sync() {
	_ = L().Sync()
}

// SetLogger replaces the logger. Tests use this to capture
// output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
