// Package logging provides the stderr log handler used by the command line.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// LevelCritical is reserved for errors that abort the whole run.
const LevelCritical = slog.Level(12)

// levelLabel returns the label printed in front of a record.
func levelLabel(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// styles holds one lipgloss style per level plus the attribute key style.
type styles struct {
	levels map[string]lipgloss.Style
	key    lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		levels: map[string]lipgloss.Style{
			"DEBUG":    r.NewStyle().Foreground(lipgloss.Color("5")),
			"INFO":     r.NewStyle().Foreground(lipgloss.Color("2")),
			"WARNING":  r.NewStyle().Foreground(lipgloss.Color("3")),
			"ERROR":    r.NewStyle().Foreground(lipgloss.Color("1")),
			"CRITICAL": r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
		key: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Handler writes one plain line per record:
//
//	trash: WARNING: A file with the name 'x.txt' already exists in the trash. path=x.txt
//
// Level labels are coloured only when the writer is a terminal.
type Handler struct {
	opts   slog.HandlerOptions
	prefix string
	w      io.Writer
	mu     *sync.Mutex
	styles *styles
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a Handler writing to w. prefix is printed before each
// line (usually the program name) and may be empty.
func NewHandler(w io.Writer, prefix string, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &Handler{
		opts:   *opts,
		prefix: prefix,
		w:      w,
		mu:     &sync.Mutex{},
	}
	if isTerminal(w) {
		h.styles = newStyles(w)
	}
	return h
}

// New returns a logger writing to w at the given minimum level.
func New(w io.Writer, prefix string, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, prefix, &slog.HandlerOptions{Level: level}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Enabled reports whether records at level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes r.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if h.prefix != "" {
		b.WriteString(h.prefix)
		b.WriteString(": ")
	}

	label := levelLabel(r.Level)
	if h.styles != nil {
		label = h.styles.levels[label].Render(label)
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// writeAttr appends " key=value". Stored attrs already carry the group
// that was open when they were added, so callers pass an empty group.
func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if h.styles != nil {
		key = h.styles.key.Render(key)
	}

	val := a.Value.Any()
	if t, ok := val.(time.Time); ok {
		val = t.Format(time.RFC3339)
	}
	s := fmt.Sprint(val)
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		s = fmt.Sprintf("%q", s)
	}

	fmt.Fprintf(b, " %s=%s", key, s)
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		newAttrs = append(newAttrs, a)
	}

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a handler that prefixes attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}
