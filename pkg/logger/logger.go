// Package logger adapts github.com/oarkflow/log to log/slog so library code
// can depend on *slog.Logger while binaries write through oarkflow/log.
package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/oarkflow/log"
)

// New returns a slog.Logger writing JSON lines to w at level and above.
func New(w io.Writer, level slog.Level) *slog.Logger {
	backend := &log.Logger{
		Level:  log.DebugLevel,
		Writer: &log.IOWriter{Writer: w},
	}
	return slog.New(NewHandler(backend, level))
}

// Handler is a slog.Handler backed by an oarkflow/log Logger.
// Group names become dotted key prefixes.
type Handler struct {
	logger *log.Logger
	level  slog.Leveler
	attrs  map[string]any
	prefix string
}

// NewHandler returns a Handler writing to l. A nil l uses log.DefaultLogger;
// a nil level means slog.LevelInfo.
func NewHandler(l *log.Logger, level slog.Leveler) *Handler {
	if l == nil {
		l = &log.DefaultLogger
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{logger: l, level: level}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for k, v := range h.attrs {
		fields[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, h.prefix, a)
		return true
	})

	var entry *log.Entry
	switch {
	case r.Level >= slog.LevelError:
		entry = h.logger.Error()
	case r.Level >= slog.LevelWarn:
		entry = h.logger.Warn()
	case r.Level >= slog.LevelInfo:
		entry = h.logger.Info()
	default:
		entry = h.logger.Debug()
	}
	if len(fields) > 0 {
		entry = entry.Map(fields)
	}
	entry.Msg(r.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, a := range attrs {
		addAttr(next.attrs, h.prefix, a)
	}
	return next
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *Handler) clone() *Handler {
	attrs := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	return &Handler{logger: h.logger, level: h.level, attrs: attrs, prefix: h.prefix}
}

func addAttr(fields map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if v.Kind() == slog.KindGroup {
		group := v.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range group {
			addAttr(fields, prefix, ga)
		}
		return
	}
	if err, ok := v.Any().(error); ok {
		fields[prefix+a.Key] = err.Error()
		return
	}
	fields[prefix+a.Key] = v.Any()
}
