package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/masq/internal/ui/output"
	"go.trai.ch/masq/internal/ui/style"
)

// PrettyHandler writes one colored line per record: the level mark, the
// message, then key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// suffix holds the attributes bound by WithAttrs, already rendered.
	suffix string
	group  string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is
// nil. A LevelVar passed in opts is shared, so level changes apply at once.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// markFor picks the mark printed in front of a record.
func markFor(level slog.Level) style.Mark {
	switch {
	case level >= slog.LevelError:
		return style.Failed
	case level >= slog.LevelWarn:
		return style.Caution
	case level < slog.LevelInfo:
		return style.Detail
	default:
		return style.Plain
	}
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark := markFor(r.Level)

	var line strings.Builder
	if mark.Glyph != "" {
		line.WriteString(mark.Glyph + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.suffix)
	r.Attrs(func(a slog.Attr) bool {
		line.WriteString(" " + h.pair(a))
		return true
	})

	colored := h.out.String(line.String()).Foreground(termenv.RGBColor(string(mark.Color)))
	_, err := h.out.WriteString(colored.String() + "\n")
	return err
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	for _, a := range attrs {
		next.suffix += " " + h.pair(a)
	}
	return &next
}

// WithGroup implements slog.Handler. Attributes bound earlier keep the group
// they were added under.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.group = name
	return &next
}

// pair renders a as key=value, the key qualified by the current group.
func (h *PrettyHandler) pair(a slog.Attr) string {
	if h.group == "" {
		return a.Key + "=" + a.Value.String()
	}
	return h.group + "." + a.Key + "=" + a.Value.String()
}
