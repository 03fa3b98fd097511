package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// TerminalHandler renders log records as coloured single-line terminal
// output:
//
//	15:04:05.000 INF entity resolved kind=artist id=42
//
// Attributes attached via WithAttrs are rendered once and cached on the
// handler; WithGroup prefixes subsequent attribute keys with "group.".
type TerminalHandler struct {
	writer   io.Writer
	level    slog.Leveler
	rendered string
	prefix   string
	mu       *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	level := slog.Leveler(slog.LevelInfo)
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &TerminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether records at the given level are logged.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one formatted record.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.Grow(256)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ansiDim + ts.Format("15:04:05.000") + ansiReset + " ")

	color, label := levelStyle(r.Level)
	b.WriteString(color + label + ansiReset + " ")
	b.WriteString(ansiBold + r.Message + ansiReset)

	b.WriteString(h.rendered)
	r.Attrs(func(a slog.Attr) bool {
		renderAttr(&b, a, h.prefix)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

// WithAttrs returns a handler that emits attrs on every record. The
// attributes are rendered eagerly, once.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.rendered)
	for _, a := range attrs {
		renderAttr(&b, a, h.prefix)
	}
	clone := *h
	clone.rendered = b.String()
	return &clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys
// with the group name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelStyle(level slog.Level) (color, label string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}

func renderAttr(b *strings.Builder, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			renderAttr(b, ga, sub)
		}
		return
	}

	b.WriteString(" " + ansiDim + prefix + a.Key + "=" + ansiReset)
	if a.Key == "error" {
		b.WriteString(ansiRed + quoteIfNeeded(a.Value) + ansiReset)
		return
	}
	b.WriteString(quoteIfNeeded(a.Value))
}

func quoteIfNeeded(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n\"\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
