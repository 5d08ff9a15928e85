package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSinkKindAndTarget(t *testing.T) {
	if got := SinkKind(NewStdoutSink()); got != "console" {
		t.Fatalf("unexpected kind: %q", got)
	}
	if got := SinkTarget(NewStdoutSink()); got != "stdout" {
		t.Fatalf("unexpected stdout target: %q", got)
	}
	if got := SinkTarget(NewStderrSink()); got != "stderr" {
		t.Fatalf("unexpected stderr target: %q", got)
	}
	if got := SinkKind(NewWriterSink(&bytes.Buffer{})); got != "writer" {
		t.Fatalf("unexpected kind: %q", got)
	}
	if got := SinkKind(customSink{}); got != "custom" {
		t.Fatalf("unexpected kind: %q", got)
	}
	if got := SinkTarget(customSink{}); got != "" {
		t.Fatalf("unexpected target: %q", got)
	}
}

func TestConsoleSinkNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)
	s.SetTemplate(mustTemplate("{{.Level}}"))
	if err := s.Emit(Entry{Level: LevelError}); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if buf.String() != "ERROR\n" {
		t.Fatalf("expected plain level name, got %q", buf.String())
	}
}

func TestWriterSinkIgnoresNilTemplate(t *testing.T) {
	s := NewWriterSink(&bytes.Buffer{})
	before := s.Template()
	s.SetTemplate(nil)
	if s.Template() != before {
		t.Fatalf("expected nil template to be ignored")
	}
}

func TestFileSinkSizeAndTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink error: %v", err)
	}
	defer s.Close()

	s.SetTemplate(mustTemplate("{{.Message}}"))
	if err := s.Emit(Entry{Message: "abc"}); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	size, err := s.Size()
	if err != nil {
		t.Fatalf("Size error: %v", err)
	}
	if size != 4 {
		t.Fatalf("unexpected size: %d", size)
	}
	if s.Target() != path || s.Kind() != "file" {
		t.Fatalf("unexpected target/kind: %q %q", s.Target(), s.Kind())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestLevelStyleCovers(t *testing.T) {
	for _, level := range Levels() {
		if levelStyle(level).Render("x") == "" {
			t.Fatalf("empty render for %s", level)
		}
	}
}

type customSink struct{}

func (customSink) Level() Level          { return LevelDebug }
func (customSink) SetLevel(Level)        {}
func (customSink) SetTemplate(*Template) {}
func (customSink) Emit(Entry) error      { return nil }
