package logging

import (
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"
)

const (
	// DefaultFormat renders "<timestamp> - <name> - <level> - <message>".
	DefaultFormat = "{{.Time}} - {{.Name}} - {{.Level}} - {{.Message}}"

	// TimeLayout is the layout used for the {{.Time}} placeholder.
	TimeLayout = "2006-01-02 15:04:05,000"
)

// Entry is a single log event on its way to the sinks.
type Entry struct {
	Time    time.Time
	Name    string
	Level   Level
	Message string
	Attrs   []slog.Attr
}

// Template turns an Entry into one line of text. Placeholders:
// {{.Time}}, {{.Timestamp}}, {{.Name}}, {{.Level}}, {{.Message}}, {{.Attrs}}.
type Template struct {
	text      string
	tmpl      *template.Template
	withAttrs bool
}

type entryView struct {
	Time      string
	Timestamp time.Time
	Name      string
	Level     string
	Message   string
	Attrs     string
}

// NewTemplate parses format; an empty format selects DefaultFormat. The
// template is executed once against a zero entry so that references to
// unknown fields fail here rather than on the first write.
func NewTemplate(format string) (*Template, error) {
	if format == "" {
		format = DefaultFormat
	}
	tmpl, err := template.New("format").Option("missingkey=error").Parse(format)
	if err != nil {
		return nil, &ConfigurationError{Op: "parse format", Target: format, Err: err}
	}
	t := &Template{
		text:      format,
		tmpl:      tmpl,
		withAttrs: strings.Contains(format, ".Attrs"),
	}
	if _, err := t.Render(Entry{}); err != nil {
		return nil, &ConfigurationError{Op: "parse format", Target: format, Err: err}
	}
	return t, nil
}

func mustTemplate(format string) *Template {
	t, err := NewTemplate(format)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) String() string {
	return t.text
}

// Render formats e as a single newline-terminated line.
func (t *Template) Render(e Entry) (string, error) {
	return t.render(e, e.Level.String())
}

func (t *Template) render(e Entry, level string) (string, error) {
	attrs := formatAttrs(e.Attrs)
	view := entryView{
		Time:      e.Time.Format(TimeLayout),
		Timestamp: e.Time,
		Name:      e.Name,
		Level:     level,
		Message:   e.Message,
		Attrs:     strings.TrimPrefix(attrs, " "),
	}

	var b strings.Builder
	if err := t.tmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render entry: %w", err)
	}
	out := strings.TrimSuffix(b.String(), "\n")
	if !t.withAttrs {
		out += attrs
	}
	return out + "\n", nil
}

func formatAttrs(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, formatValue(a.Value))
	}
	return b.String()
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return v.String()
	}
}
