package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	logPath    string
)

// SetDebug switches the minimum level between debug and info.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all component loggers to it.
// The terminal is in raw mode while the editor runs, so logs never go to
// stdout or stderr. Calling Init again with a different path reopens.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil && path == logPath {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

// currentPath returns the open log file path, or "" when logging is off.
func currentPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file. Loggers handed out earlier keep working but
// their output is dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logPath = ""
	slogLogger = nil
}

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.ComponentLogger("session")
//	log.Info("saved", "file", name, "lines", n)
func ComponentLogger(component string) *slog.Logger {
	return slog.New(componentHandler{component: component})
}

// componentHandler resolves the active file handler on every record, so
// package-level loggers created before Init still end up in the log file.
type componentHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h componentHandler) current() slog.Handler {
	mu.Lock()
	l := slogLogger
	mu.Unlock()
	if l == nil {
		return slog.NewTextHandler(io.Discard, nil)
	}
	hh := l.Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		hh = hh.WithAttrs(h.attrs)
	}
	if h.group != "" {
		hh = hh.WithGroup(h.group)
	}
	return hh
}

func (h componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.current().Enabled(ctx, level)
}

func (h componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.current().Handle(ctx, r)
}

func (h componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

func (h componentHandler) WithGroup(name string) slog.Handler {
	next := h
	next.group = name
	return next
}
