// Command fsmctl loads a machine config and runs a command script against it.
//
//	fsmctl -config player.yaml trigger:start trigger:pause undo redo states
//
// Settings are read from the environment (or a .env file):
//
//	FSMCTL_LOG_LEVEL               debug|info|warn|error (default info)
//	FSMCTL_LOG_FORMAT              text|json (default text)
//	FSMCTL_STRICT                  validate the config before running
//	FSMCTL_RESET_CLEARS_HISTORY    make reset drop the undo/redo timeline
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/internal/config"
	"github.com/comalice/fsmx/internal/console"
	"github.com/comalice/fsmx/internal/logger"
	"github.com/comalice/fsmx/internal/production"
)

type settings struct {
	LogLevel           string `env:"FSMCTL_LOG_LEVEL" envDefault:"info"`
	LogFormat          string `env:"FSMCTL_LOG_FORMAT" envDefault:"text"`
	Strict             bool   `env:"FSMCTL_STRICT"`
	ResetClearsHistory bool   `env:"FSMCTL_RESET_CLEARS_HISTORY"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fsmctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "machine config file (YAML or JSON)")
	dot := fs.Bool("dot", false, "print Graphviz DOT after the script")
	stopOnError := fs.Bool("stop-on-error", false, "abort at the first failing command")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "fsmctl: -config is required")
		fs.Usage()
		return 2
	}

	var s settings
	if err := config.Load(&s); err != nil {
		fmt.Fprintf(stderr, "fsmctl: %v\n", err)
		return 1
	}
	log, err := newLogger(s, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "fsmctl: %v\n", err)
		return 1
	}

	cfg, err := production.LoadFile(*configPath)
	if err != nil {
		log.Error("load config", logger.Error(err))
		return 1
	}

	opts := []fsmx.Option{fsmx.WithLogger(log)}
	if s.Strict {
		opts = append(opts, fsmx.WithStrict())
	}
	if s.ResetClearsHistory {
		opts = append(opts, fsmx.WithResetClearsHistory())
	}
	m, err := fsmx.New(cfg, opts...)
	if err != nil {
		log.Error("create machine", logger.Error(err))
		return 1
	}
	log.Debug("machine ready", slog.String("config", *configPath), logger.State(m.State()), slog.Int("states", cfg.States.Len()))

	r := &console.Runner{Machine: m, Out: stdout, Logger: log, StopOnError: *stopOnError}
	if err := r.Run(fs.Args()); err != nil {
		log.Error("script aborted", logger.Error(err))
		return 1
	}

	if *dot {
		fmt.Fprint(stdout, (&production.Visualizer{}).ExportDOT(cfg, m.State()))
	}
	return 0
}

func newLogger(s settings, w io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	format := logger.Format(s.LogFormat)
	if format != logger.FormatText && format != logger.FormatJSON {
		return nil, fmt.Errorf("invalid log format %q", s.LogFormat)
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(w),
		logger.WithAttr(slog.String("service", "fsmctl")),
	), nil
}
