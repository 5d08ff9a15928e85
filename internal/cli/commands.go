package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhajizada/loggy/internal/config"
	"github.com/rhajizada/loggy/internal/logging"
	"github.com/rhajizada/loggy/internal/metrics"
	"github.com/rhajizada/loggy/internal/render"

	"github.com/spf13/cobra"
)

const (
	DemoFile   = "example.log"
	DemoFormat = "{{.Time}} - {{.Level}} - {{.Message}}"
)

type App struct {
	Cfg      *config.Config
	Facade   *logging.Facade
	Renderer *render.Renderer
	Metrics  *prometheus.Registry
}

// loadConfig reads the config named by --config, or the default path when
// it exists, then applies flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	path := flags.cfgPath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}

	if flags.name != "" {
		cfg.Name = flags.name
	}
	if flags.level != "" {
		cfg.Level = flags.level
	}
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if flags.file != "" {
		abs, err := filepath.Abs(flags.file)
		if err != nil {
			return nil, err
		}
		cfg.File = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewApp(cfg *config.Config, stdout, stderr io.Writer, log *slog.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	opts := []logging.Option{
		logging.WithName(cfg.Name),
		logging.WithLevel(cfg.LogLevel()),
		logging.WithFormat(cfg.Format),
		logging.WithConsole(stdout),
		logging.WithRegistry(logging.NewRegistry()),
		logging.WithErrorHandler(logging.ReportTo(stderr)),
		logging.WithMetrics(collector),
	}
	if cfg.File != "" {
		opts = append(opts, logging.WithFile(cfg.File))
	}

	f, err := logging.NewFacade(opts...)
	if err != nil {
		return nil, err
	}
	for i, h := range cfg.Handlers {
		sink, err := newSink(h, stdout, stderr)
		if err == nil {
			err = f.AddHandler(sink, h.HandlerLevel(), h.Format)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("handlers[%d]: %w", i, err)
		}
	}

	return &App{
		Cfg:      cfg,
		Facade:   f,
		Renderer: render.New(log, stdout),
		Metrics:  reg,
	}, nil
}

func newSink(h config.HandlerSpec, stdout, stderr io.Writer) (logging.Sink, error) {
	switch h.Type {
	case config.HandlerStdout:
		return logging.NewConsoleSink(stdout), nil
	case config.HandlerStderr:
		return logging.NewConsoleSink(stderr), nil
	case config.HandlerFile:
		return logging.NewFileSink(h.Path)
	default:
		return nil, fmt.Errorf("unknown handler type %q", h.Type)
	}
}

// Finish prints stats when asked and reports the size of every file
// handler, then closes the facade.
func (a *App) Finish(stats bool, log *slog.Logger) {
	for _, s := range a.Facade.Handlers() {
		if file, ok := s.(*logging.FileSink); ok {
			if size, err := file.Size(); err == nil {
				a.Renderer.FileWritten(file.Target(), size)
			}
		}
	}
	if stats {
		families, err := a.Metrics.Gather()
		if err != nil {
			log.Warn("gather metrics failed", "error", err)
		} else {
			a.Renderer.Stats(families)
		}
	}
	if err := a.Facade.Close(); err != nil {
		log.Warn("close handlers failed", "error", err)
	}
}

func newDemoCmd(flags *globalFlags, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Log one message per level, then add a stderr handler for warnings and above",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cfg.File == "" {
				cfg.File = DemoFile
			}
			if cfg.Format == "" {
				cfg.Format = DemoFormat
			}

			app, err := NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
			if err != nil {
				return err
			}
			defer app.Finish(flags.stats, log)

			f := app.Facade
			f.Debug("This is a debug message")
			f.Info("This is an info message")
			f.Warning("This is a warning message")
			f.Error("This is an error message")
			f.Critical("This is a critical message")

			if err := f.AddHandler(logging.NewConsoleSink(cmd.ErrOrStderr()), logging.LevelWarning, cfg.Format); err != nil {
				return err
			}
			f.Warning("This is a warning message (stderr)")
			f.Error("This is an error message (stderr)")
			return nil
		},
	}
}

func newEmitCmd(flags *globalFlags, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "emit <level> <message...>",
		Short: "Log a single message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
			if err != nil {
				return err
			}
			defer app.Finish(flags.stats, log)

			app.Facade.Log(level, strings.Join(args[1:], " "))
			return nil
		},
	}
}

func newHandlersCmd(flags *globalFlags, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List the handlers the current config produces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Facade.Close(); closeErr != nil {
					log.Warn("close handlers failed", "error", closeErr)
				}
			}()

			app.Renderer.Handlers(app.Facade.Handlers())
			return nil
		},
	}
}

func newLevelsCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the recognized levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			render.New(log, cmd.OutOrStdout()).Levels(logging.Levels())
			return nil
		},
	}
}
