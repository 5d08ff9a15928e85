package cli

import (
	"log/slog"
	"os"

	"github.com/rhajizada/loggy/internal/logging"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	cfgPath string
	name    string
	level   string
	format  string
	file    string
	stats   bool
}

func Execute(version string) {
	if err := ExecuteArgs(version, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func ExecuteArgs(version string, args []string) error {
	log := logging.New(os.Stdout)
	errLog := logging.New(os.Stderr)

	root := NewRootCmd(version, log)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		errLog.Error("command failed", "error", err)
		return err
	}

	return nil
}

func NewRootCmd(version string, log *slog.Logger) *cobra.Command {
	flags := &globalFlags{}
	var showVersion bool

	root := &cobra.Command{
		Use:           "loggy",
		Short:         "Named loggers with console and file handlers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				log.Info("version", "version", version)
				return nil
			}
			return cmd.Help()
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.cfgPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/loggy/config.yaml)")
	pf.StringVar(&flags.name, "name", "", "logger name")
	pf.StringVarP(&flags.level, "level", "l", "", "minimum level: debug|info|warning|error|critical")
	pf.StringVarP(&flags.format, "format", "f", "", "line template, e.g. '{{.Time}} - {{.Level}} - {{.Message}}'")
	pf.StringVar(&flags.file, "file", "", "also append log lines to this file")
	pf.BoolVar(&flags.stats, "stats", false, "print delivery counters when done")
	root.Flags().BoolVarP(&showVersion, "version", "V", false, "print version")

	root.AddCommand(
		newDemoCmd(flags, log),
		newEmitCmd(flags, log),
		newHandlersCmd(flags, log),
		newLevelsCmd(log),
	)

	return root
}
