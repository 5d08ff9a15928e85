package logging

import (
	"sync"
	"sync/atomic"
)

// Registry hands out named loggers. Every lookup of the same name on the
// same registry returns the same Logger, so sinks attached through one
// Facade are seen by every other Facade sharing that name.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// DefaultRegistry is the process-wide registry used when a Facade is built
// without WithRegistry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{loggers: map[string]*Logger{}}
}

// Logger returns the logger called name, creating it at LevelInfo.
func (r *Registry) Logger(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := &Logger{name: name}
	l.level.Store(int64(LevelInfo))
	r.loggers[name] = l
	return l
}

// Names returns the names of all loggers created so far.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	return names
}

// Logger is a named registry entry: a threshold plus the sinks attached to
// it in registration order.
type Logger struct {
	name  string
	level atomic.Int64

	mu    sync.RWMutex
	sinks []Sink
}

func (l *Logger) Name() string { return l.name }

func (l *Logger) Level() Level { return Level(l.level.Load()) }

func (l *Logger) SetLevel(level Level) { l.level.Store(int64(level)) }

// Enabled is the logger-side gate; sinks apply their own threshold after it.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

func (l *Logger) AddSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// Sinks returns a snapshot of the attached sinks.
func (l *Logger) Sinks() []Sink {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Sink(nil), l.sinks...)
}
