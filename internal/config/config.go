package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/containerd/errdefs"
	"gopkg.in/yaml.v3"

	"github.com/rhajizada/loggy/internal/logging"
)

const (
	HandlerStdout = "stdout"
	HandlerStderr = "stderr"
	HandlerFile   = "file"
)

type Config struct {
	// BaseDir is the directory containing the config file; relative paths resolve against it.
	BaseDir string `yaml:"-" json:"-"`

	Version int    `yaml:"version" json:"version"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"logger name"`
	Level   string `yaml:"level,omitempty" json:"level,omitempty" jsonschema:"debug, info, warning, error or critical"`
	Format  string `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"text/template line format"`
	File    string `yaml:"file,omitempty" json:"file,omitempty" jsonschema:"file to append log lines to"`

	Handlers []HandlerSpec `yaml:"handlers,omitempty" json:"handlers,omitempty"`
}

type HandlerSpec struct {
	Type   string `yaml:"type" json:"type" jsonschema:"stdout, stderr or file"`
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`   // default: debug
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // default: top-level format
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`     // file only
}

func Default() *Config {
	return &Config{
		Version: 1,
		Name:    logging.DefaultName,
		Level:   "debug",
	}
}

func LoadFile(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded, err := ExpandEnv(string(raw))
	if err != nil {
		return nil, fmt.Errorf("env expansion failed: %w", err)
	}

	cfg := Default()
	cfg.BaseDir = filepath.Dir(absPath)

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Name == "" {
		c.Name = logging.DefaultName
	}
	if c.Level == "" {
		c.Level = "debug"
	}
	if _, err := logging.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if _, err := logging.NewTemplate(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	c.File = resolvePath(c.BaseDir, c.File)

	for i, h := range c.Handlers {
		switch h.Type {
		case HandlerStdout, HandlerStderr:
			if h.Path != "" {
				return fmt.Errorf("handlers[%d].path: only valid for file handlers: %w", i, errdefs.ErrInvalidArgument)
			}
		case HandlerFile:
			if h.Path == "" {
				return fmt.Errorf("handlers[%d].path: required for file handlers: %w", i, errdefs.ErrInvalidArgument)
			}
			h.Path = resolvePath(c.BaseDir, h.Path)
		case "":
			return fmt.Errorf("handlers[%d].type: required: %w", i, errdefs.ErrInvalidArgument)
		default:
			return fmt.Errorf("handlers[%d].type: must be stdout|stderr|file: %w", i, errdefs.ErrInvalidArgument)
		}

		if h.Level != "" {
			if _, err := logging.ParseLevel(h.Level); err != nil {
				return fmt.Errorf("handlers[%d].level: %w", i, err)
			}
		}
		if h.Format != "" {
			if _, err := logging.NewTemplate(h.Format); err != nil {
				return fmt.Errorf("handlers[%d].format: %w", i, err)
			}
		}

		c.Handlers[i] = h
	}

	return nil
}

// LogLevel returns the parsed top-level level. Call after Validate.
func (c *Config) LogLevel() logging.Level {
	l, err := logging.ParseLevel(c.Level)
	if err != nil {
		return logging.LevelDebug
	}
	return l
}

// HandlerLevel returns the parsed level of h, defaulting to debug.
func (h HandlerSpec) HandlerLevel() logging.Level {
	if h.Level == "" {
		return logging.LevelDebug
	}
	l, err := logging.ParseLevel(h.Level)
	if err != nil {
		return logging.LevelDebug
	}
	return l
}

var ErrBadExpansion = errors.New("bad ${...} expansion syntax")

func resolvePath(baseDir, p string) string {
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
