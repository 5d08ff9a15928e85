package logging

import (
	"io"
	"log/slog"
)

// ConsoleFormat is the short line format used for command output.
const ConsoleFormat = "{{.Level}} {{.Message}}"

// New returns an slog.Logger backed by its own Facade writing to out at
// LevelInfo. The facade lives in a private registry.
func New(out io.Writer) *slog.Logger {
	f, err := NewFacade(
		WithName("cli"),
		WithLevel(LevelInfo),
		WithFormat(ConsoleFormat),
		WithConsole(out),
		WithRegistry(NewRegistry()),
	)
	if err != nil {
		return slog.New(slog.NewTextHandler(out, nil))
	}
	return slog.New(f.Handler())
}
