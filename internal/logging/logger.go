// Package logging builds the zap loggers used across resumegraph.
// Every subsystem logs through a category-named child of one root logger so
// output can be filtered by the "logger" field.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config resolution
	CategoryAPI      Category = "api"      // LLM API calls
	CategoryGraph    Category = "graph"    // Extraction, normalization, validation
	CategoryRender   Category = "render"   // HTML assembly
	CategorySlicer   Category = "slicer"   // Portrait slicing
	CategoryPipeline Category = "pipeline" // End-to-end orchestration
)

// Options configures the root logger.
type Options struct {
	Level   string          // debug, info, warn, error
	Format  string          // json, console
	File    string          // optional extra output path
	Verbose bool            // forces debug level
	Enabled map[string]bool // per-category switch; missing means enabled
}

// Logger is the root logger plus the category filter.
type Logger struct {
	root    *zap.Logger
	enabled map[string]bool
}

// New builds a root logger from options.
func New(opts Options) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(opts.Format) {
	case "json", "":
		cfg = zap.NewProductionConfig()
	case "console", "text":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format: %s (valid: json, console)", opts.Format)
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	if opts.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.File)
	}

	root, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &Logger{root: root, enabled: opts.Enabled}, nil
}

// ParseLevel maps a config level string to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// Get returns a named child logger for the category.
// Disabled categories get a no-op logger.
func (l *Logger) Get(category Category) *zap.Logger {
	if !l.IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	return l.root.Named(string(category))
}

// IsCategoryEnabled returns whether a specific category is enabled
func (l *Logger) IsCategoryEnabled(category Category) bool {
	if l.enabled == nil {
		return true
	}
	enabled, exists := l.enabled[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.root.Sync()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
