package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rhajizada/loggy/internal/metrics"
)

// DefaultName is the logger name used when none is given.
const DefaultName = "loggy"

// ErrorHandler receives sink failures. Logging calls never return them.
type ErrorHandler func(s Sink, e Entry, err error)

type options struct {
	name     string
	level    Level
	format   string
	file     string
	console  io.Writer
	registry *Registry
	now      func() time.Time
	onError  ErrorHandler
	metrics  *metrics.Collector
}

type Option func(*options)

func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithFormat sets the template used for the construction sinks and for
// AddHandler calls that pass an empty format.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithFile adds a sink appending to path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithConsole replaces os.Stdout as the target of the console sink.
func WithConsole(out io.Writer) Option {
	return func(o *options) { o.console = out }
}

func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) { o.onError = h }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// Facade is a named logger with its own list of tracked sinks.
type Facade struct {
	logger  *Logger
	format  string
	now     func() time.Time
	onError ErrorHandler
	metrics *metrics.Collector

	mu       sync.Mutex
	handlers []Sink
}

// NewFacade looks up the named logger, sets its level and attaches a console
// sink plus, when WithFile is given, a file sink. The logger is shared with
// every other Facade built on the same registry and name, so its sink list
// grows with each construction.
func NewFacade(opts ...Option) (*Facade, error) {
	o := options{
		name:     DefaultName,
		level:    LevelDebug,
		console:  os.Stdout,
		registry: DefaultRegistry,
		now:      time.Now,
		onError:  ReportTo(os.Stderr),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.onError == nil {
		o.onError = ReportTo(os.Stderr)
	}

	if _, err := NewTemplate(o.format); err != nil {
		return nil, err
	}

	f := &Facade{
		logger:  o.registry.Logger(o.name),
		format:  o.format,
		now:     o.now,
		onError: o.onError,
		metrics: o.metrics,
	}
	f.logger.SetLevel(o.level)

	if err := f.AddHandler(NewConsoleSink(o.console), o.level, o.format); err != nil {
		return nil, err
	}
	if o.file != "" {
		fs, err := NewFileSink(o.file)
		if err != nil {
			return nil, err
		}
		if err := f.AddHandler(fs, o.level, o.format); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	return f, nil
}

func (f *Facade) Name() string { return f.logger.Name() }

func (f *Facade) Level() Level { return f.logger.Level() }

// Handlers returns the sinks added through this facade, in order.
func (f *Facade) Handlers() []Sink {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Sink(nil), f.handlers...)
}

// AddHandler sets the sink's level and template, then attaches it. An empty
// format falls back to the facade's format. The same sink may be added more
// than once and will then receive each entry once per registration.
func (f *Facade) AddHandler(s Sink, level Level, format string) error {
	if s == nil {
		return &ConfigurationError{Op: "add handler", Err: ErrNilSink}
	}
	if format == "" {
		format = f.format
	}
	tmpl, err := NewTemplate(format)
	if err != nil {
		return err
	}

	s.SetLevel(level)
	s.SetTemplate(tmpl)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.logger.AddSink(s)
	f.handlers = append(f.handlers, s)
	return nil
}

// UpdateLevel moves the logger and every sink added so far to level. Sinks
// added later keep the level they are registered with.
func (f *Facade) UpdateLevel(level Level) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logger.SetLevel(level)
	for _, s := range f.handlers {
		s.SetLevel(level)
	}
}

func (f *Facade) Debug(msg string)    { f.Log(LevelDebug, msg) }
func (f *Facade) Info(msg string)     { f.Log(LevelInfo, msg) }
func (f *Facade) Warning(msg string)  { f.Log(LevelWarning, msg) }
func (f *Facade) Error(msg string)    { f.Log(LevelError, msg) }
func (f *Facade) Critical(msg string) { f.Log(LevelCritical, msg) }

func (f *Facade) Debugf(format string, args ...any) {
	f.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (f *Facade) Infof(format string, args ...any) {
	f.Log(LevelInfo, fmt.Sprintf(format, args...))
}

func (f *Facade) Warningf(format string, args ...any) {
	f.Log(LevelWarning, fmt.Sprintf(format, args...))
}

func (f *Facade) Errorf(format string, args ...any) {
	f.Log(LevelError, fmt.Sprintf(format, args...))
}

func (f *Facade) Criticalf(format string, args ...any) {
	f.Log(LevelCritical, fmt.Sprintf(format, args...))
}

// Log writes msg at level to every sink of the underlying logger that
// passes both the logger threshold and its own.
func (f *Facade) Log(level Level, msg string) {
	f.emit(Entry{Time: f.now(), Level: level, Message: msg})
}

func (f *Facade) emit(e Entry) {
	name := f.logger.Name()
	e.Name = name

	if !f.logger.Enabled(e.Level) {
		f.metrics.Message(name, e.Level.String(), metrics.OutcomeFiltered)
		return
	}
	f.metrics.Message(name, e.Level.String(), metrics.OutcomeEmitted)

	for _, s := range f.logger.Sinks() {
		kind := SinkKind(s)
		if e.Level < s.Level() {
			f.metrics.Write(name, kind, metrics.OutcomeSkipped)
			continue
		}
		if err := s.Emit(e); err != nil {
			f.metrics.Write(name, kind, metrics.OutcomeFailed)
			f.onError(s, e, err)
			continue
		}
		f.metrics.Write(name, kind, metrics.OutcomeDelivered)
	}
}

// Close closes the sinks added through this facade that hold resources.
func (f *Facade) Close() error {
	var errs []error
	for _, s := range f.Handlers() {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s sink %s: %w", SinkKind(s), SinkTarget(s), err))
			}
		}
	}
	return errors.Join(errs...)
}

// ReportTo returns an ErrorHandler that describes each failure on out.
// It is the default, writing to os.Stderr.
func ReportTo(out io.Writer) ErrorHandler {
	return func(s Sink, e Entry, err error) {
		fmt.Fprintf(out, "--- Logging error ---\n%s sink %s: %v\nMessage: %q\n",
			SinkKind(s), SinkTarget(s), err, e.Message)
	}
}
