package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestTemplateRenderDeterministic(t *testing.T) {
	tmpl, err := NewTemplate("")
	if err != nil {
		t.Fatalf("NewTemplate error: %v", err)
	}
	e := Entry{
		Time:    time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
		Name:    "svc",
		Level:   LevelWarning,
		Message: "disk low",
	}

	first, err := tmpl.Render(e)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	second, err := tmpl.Render(e)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if first != second {
		t.Fatalf("render not deterministic: %q vs %q", first, second)
	}
	if want := "2025-01-02 03:04:05,006 - svc - WARNING - disk low\n"; first != want {
		t.Fatalf("unexpected render: %q", first)
	}
}

func TestTemplateKeepsSingleNewline(t *testing.T) {
	tmpl, err := NewTemplate("{{.Message}}\n")
	if err != nil {
		t.Fatalf("NewTemplate error: %v", err)
	}
	got, err := tmpl.Render(Entry{Message: "x"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "x\n" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestTemplateTimestampField(t *testing.T) {
	tmpl, err := NewTemplate(`{{.Timestamp.Format "15:04"}} {{.Message}}`)
	if err != nil {
		t.Fatalf("NewTemplate error: %v", err)
	}
	got, err := tmpl.Render(Entry{Time: time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC), Message: "m"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "09:30 m\n" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestTemplateAppendsAttrs(t *testing.T) {
	tmpl := mustTemplate("{{.Message}}")
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := tmpl.Render(Entry{
		Message: "m",
		Attrs:   []slog.Attr{slog.String("k", "v"), slog.Time("at", ts)},
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "m k=v at=2025-01-02T03:04:05Z\n" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestNewTemplateErrors(t *testing.T) {
	for _, format := range []string{"{{", "{{.Missing}}", "{{.Message.Nope}}"} {
		_, err := NewTemplate(format)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("format %q: expected ConfigurationError, got %v", format, err)
		}
		if cfgErr.Target != format {
			t.Fatalf("unexpected target %q", cfgErr.Target)
		}
	}
}

func TestTemplateString(t *testing.T) {
	if got := mustTemplate("").String(); got != DefaultFormat {
		t.Fatalf("unexpected default format: %q", got)
	}
}
