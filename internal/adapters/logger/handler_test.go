package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/opamlock/internal/adapters/logger"
)

func TestPrettyHandler_Lines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name  string
		level slog.Level
		msg   string
		want  string
	}{
		{name: "plain", level: slog.LevelInfo, msg: "locked 1 pins and 2 packages to opam.lock", want: "locked 1 pins and 2 packages to opam.lock\n"},
		{name: "command", level: slog.LevelInfo, msg: "$ opam pin", want: "$ opam pin\n"},
		{name: "command output", level: slog.LevelInfo, msg: "  libA 1.0", want: "  libA 1.0\n"},
		{name: "warning", level: slog.LevelWarn, msg: "lock is empty", want: "! lock is empty\n"},
		{name: "error", level: slog.LevelError, msg: "boom", want: "✗ boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			slog.New(logger.NewPrettyHandler(buf, nil)).Log(t.Context(), tt.level, tt.msg)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPrettyHandler(buf, nil)).With("pins", 1).WithGroup("opam")
	log.Info("resolved", "binary", "opam")

	assert.Equal(t, "resolved pins=1 opam.binary=opam\n", buf.String())
}

func TestPrettyHandler_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	log.Info("hidden")

	assert.Empty(t, buf.String())
}
