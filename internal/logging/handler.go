package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Handler adapts a Facade to slog. Records go through the same two
// thresholds as the level methods; attributes are appended as key=value.
type Handler struct {
	f      *Facade
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

func (f *Facade) Handler() *Handler {
	return &Handler{f: f}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	l := Level(level)
	if !h.f.logger.Enabled(l) {
		return false
	}
	for _, s := range h.f.logger.Sinks() {
		if l >= s.Level() {
			return true
		}
	}
	return false
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, qualify(a, h.groups))
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = h.f.now()
	}
	h.f.emit(Entry{Time: t, Level: Level(r.Level), Message: r.Message, Attrs: attrs})
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &Handler{
		f:      h.f,
		attrs:  append([]slog.Attr{}, h.attrs...),
		groups: append([]string{}, h.groups...),
	}
	for _, a := range attrs {
		next.attrs = append(next.attrs, qualify(a, h.groups))
	}
	return next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{
		f:      h.f,
		attrs:  append([]slog.Attr{}, h.attrs...),
		groups: append(append([]string{}, h.groups...), name),
	}
}

func qualify(a slog.Attr, groups []string) slog.Attr {
	if len(groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(groups, ".") + "." + a.Key, Value: a.Value}
}
