package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestVjHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name      string
		sessionID string
		level     slog.Level
		message   string
		attrs     []slog.Attr
		want      string
	}{
		{
			name:      "basic info message",
			sessionID: "20240615T143000Z",
			level:     slog.LevelInfo,
			message:   "journal saved",
			want:      "2024-06-15T14:30:45Z\tINFO\t20240615T143000Z\tjournal saved\n",
		},
		{
			name:      "debug level",
			sessionID: "s-2",
			level:     slog.LevelDebug,
			message:   "no saved journal, starting empty",
			want:      "2024-06-15T14:30:45Z\tDEBUG\ts-2\tno saved journal, starting empty\n",
		},
		{
			name:      "with record attrs",
			sessionID: "s-3",
			level:     slog.LevelInfo,
			message:   "trip deleted",
			attrs:     []slog.Attr{slog.Int("trip", 2), slog.Int("photos", 14)},
			want:      "2024-06-15T14:30:45Z\tINFO\ts-3\ttrip deleted\ttrip=2\tphotos=14\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &vjHandler{w: &buf, sessionID: tt.sessionID}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestVjHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &vjHandler{w: &buf, sessionID: "s-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "archive")}).(*vjHandler)
	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}

	r := slog.NewRecord(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), slog.LevelInfo, "backup stored", 0)
	r.AddAttrs(slog.Int64("version", 3))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=archive") {
		t.Errorf("expected pre-set attr component=archive, got: %q", got)
	}
	if !strings.Contains(got, "version=3") {
		t.Errorf("expected record attr version=3, got: %q", got)
	}
}

func TestVjHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Leveler
		check slog.Level
		want  bool
	}{
		{"no level accepts debug", nil, slog.LevelDebug, true},
		{"warn drops info", slog.LevelWarn, slog.LevelInfo, false},
		{"warn keeps warn", slog.LevelWarn, slog.LevelWarn, true},
		{"warn keeps error", slog.LevelWarn, slog.LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &vjHandler{level: tt.level}
			if got := h.Enabled(context.Background(), tt.check); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestFanoutHandler(t *testing.T) {
	var all, warnings bytes.Buffer
	logger := slog.New(fanoutHandler{
		&vjHandler{w: &all, sessionID: "s", level: slog.LevelDebug},
		&vjHandler{w: &warnings, sessionID: "s", level: slog.LevelWarn},
	})

	logger.Debug("loaded")
	logger.Warn("photo file missing", "path", "/x.jpg")

	if n := strings.Count(all.String(), "\n"); n != 2 {
		t.Errorf("debug handler got %d lines, want 2: %q", n, all.String())
	}
	if got := warnings.String(); !strings.Contains(got, "photo file missing\tpath=/x.jpg") || strings.Contains(got, "loaded") {
		t.Errorf("warn handler output = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "vj.log")

	logger, f, err := newLogger(path, "test-session")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Info("journal saved")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "\ttest-session\tjournal saved") {
		t.Errorf("log file = %q", data)
	}
}
