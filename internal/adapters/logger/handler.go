package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	promptPrefix = "$ "
	outputPrefix = "  "
)

// PrettyHandler is a slog.Handler that renders one colored line per record.
// Echoed command lines ("$ opam ...") and their captured output are dimmed so the
// results of a run stand out.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: newOutput(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.render(r.Level, r.Message))

	attrs := h.recordAttrs(r)
	if attrs != "" {
		b.WriteString(" ")
		b.WriteString(h.paint(attrs, Slate))
	}
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
}

func (h *PrettyHandler) render(level slog.Level, msg string) string {
	switch {
	case level >= slog.LevelError:
		return h.paint(Cross+" "+msg, Red)
	case level >= slog.LevelWarn:
		return h.paint(Warning+" "+msg, Yellow)
	case strings.HasPrefix(msg, promptPrefix):
		return h.paint(promptPrefix, Green) + h.paint(strings.TrimPrefix(msg, promptPrefix), Slate)
	case strings.HasPrefix(msg, outputPrefix):
		return h.paint(msg, Slate)
	default:
		return msg
	}
}

func (h *PrettyHandler) paint(s string, c lipgloss.Color) string {
	return h.out.String(s).Foreground(termenv.RGBColor(string(c))).String()
}

func (h *PrettyHandler) recordAttrs(r slog.Record) string {
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		parts = append(parts, a.Key+"="+a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		a = h.qualify(a)
		parts = append(parts, a.Key+"="+a.Value.String())
		return true
	})
	return strings.Join(parts, " ")
}

// qualify prefixes the key with the current group.
func (h *PrettyHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

// WithAttrs returns a Handler that also renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, h.qualify(a))
	}
	return &next
}

// WithGroup returns a Handler that prefixes later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}
