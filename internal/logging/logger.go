// Package logging provides the categorized zap logger shared by husk's
// components. Output is quiet by default; --verbose raises the level to
// debug (see cmd/husk).
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category tags a logger to one of husk's subsystems, so log lines can be
// filtered by component the way codenerd's CategoryWorld/CategoryBoot do.
type Category string

const (
	CategoryDriver   Category = "driver"
	CategoryGrammar  Category = "grammar"
	CategoryConfig   Category = "config"
	CategoryEdit     Category = "edit"
	CategoryScaffold Category = "scaffold"
)

var (
	mu     sync.RWMutex
	base   *zap.Logger = zap.NewNop()
	loggers            = make(map[Category]*zap.Logger)
)

// Init installs the process-wide base logger. verbose sets the debug level;
// otherwise only warnings and above reach the console, matching the
// "default output is quiet" requirement of §7.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger
	loggers = make(map[Category]*zap.Logger)
	mu.Unlock()
	return nil
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

// Get returns the logger scoped to category, creating and caching it on
// first use.
func Get(category Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.With(zap.String("component", string(category)))
	loggers[category] = l
	return l
}
