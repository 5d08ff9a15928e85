package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/containerd/errdefs"

	"github.com/rhajizada/loggy/internal/termutil"
)

// Sink is a destination for formatted entries. Each sink carries its own
// threshold and template.
type Sink interface {
	Level() Level
	SetLevel(Level)
	SetTemplate(*Template)
	Emit(Entry) error
}

// WriterSink writes rendered entries to an io.Writer. Writes are serialised
// per sink.
type WriterSink struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	tmpl  *Template
	color bool
}

func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{
		out:   out,
		level: LevelDebug,
		tmpl:  mustTemplate(DefaultFormat),
	}
}

func (s *WriterSink) Level() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *WriterSink) SetLevel(level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
}

func (s *WriterSink) SetTemplate(t *Template) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tmpl = t
}

// Template returns the template currently attached to the sink.
func (s *WriterSink) Template() *Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tmpl
}

func (s *WriterSink) Emit(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := e.Level.String()
	if s.color {
		label = levelStyle(e.Level).Render(label)
	}
	line, err := s.tmpl.render(e, label)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.out, line)
	return err
}

func (s *WriterSink) Kind() string { return "writer" }

// ConsoleSink writes to a terminal stream. Level names are coloured when the
// stream is a terminal.
type ConsoleSink struct {
	*WriterSink
	stream string
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	ws := NewWriterSink(out)
	ws.color = termutil.IsTerminal(out)
	return &ConsoleSink{WriterSink: ws, stream: streamName(out)}
}

func NewStdoutSink() *ConsoleSink { return NewConsoleSink(os.Stdout) }

func NewStderrSink() *ConsoleSink { return NewConsoleSink(os.Stderr) }

func (s *ConsoleSink) Kind() string { return "console" }

func (s *ConsoleSink) Target() string { return s.stream }

func streamName(out io.Writer) string {
	switch out {
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	if n, ok := out.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", out)
}

// FileSink appends entries to a file opened at construction.
type FileSink struct {
	*WriterSink
	path string
	file *os.File
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &ConfigurationError{
			Op:     "open file sink",
			Target: path,
			Err:    fmt.Errorf("%w: %w", errdefs.ErrUnavailable, err),
		}
	}
	return &FileSink{WriterSink: NewWriterSink(f), path: path, file: f}, nil
}

func (s *FileSink) Kind() string { return "file" }

func (s *FileSink) Target() string { return s.path }

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Size reports the current size of the file on disk.
func (s *FileSink) Size() (int64, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// SinkKind names the variant of s, or "custom" for foreign implementations.
func SinkKind(s Sink) string {
	if k, ok := s.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "custom"
}

// SinkTarget describes where s writes, when it knows.
func SinkTarget(s Sink) string {
	if t, ok := s.(interface{ Target() string }); ok {
		return t.Target()
	}
	return ""
}

var (
	styleDebug    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func levelStyle(level Level) lipgloss.Style {
	switch {
	case level >= LevelCritical:
		return styleCritical
	case level >= LevelError:
		return styleError
	case level >= LevelWarning:
		return styleWarning
	case level >= LevelInfo:
		return styleInfo
	default:
		return styleDebug
	}
}
