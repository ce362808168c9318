package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// vjHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<sessionID>\t<message>\t<key=value ...>
//
// Records below level are dropped.
type vjHandler struct {
	w         io.Writer
	sessionID string
	level     slog.Leveler
	attrs     []slog.Attr
}

func (h *vjHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

func (h *vjHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, r.Level.String(), h.sessionID, r.Message)
	if err != nil {
		return err
	}

	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *vjHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &vjHandler{
		w:         h.w,
		sessionID: h.sessionID,
		level:     h.level,
		attrs:     append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *vjHandler) WithGroup(string) slog.Handler { return h }

// fanoutHandler sends each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// newLogger creates a structured logger that appends every record to logPath
// and writes warnings and errors to stderr.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logPath string, sessionID string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := fanoutHandler{
		&vjHandler{w: f, sessionID: sessionID, level: slog.LevelDebug},
		&vjHandler{w: os.Stderr, sessionID: sessionID, level: slog.LevelWarn},
	}
	return slog.New(handler), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the journal.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
