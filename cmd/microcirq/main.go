// Command microcirq runs small quantum circuits on a state-vector simulator.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"microcirq/quantum"
	"microcirq/tui"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the flag values and the resolved configuration shared by every
// subcommand.
type app struct {
	configPath  string
	seed        uint64
	qubits      int
	logLevel    string
	metricsAddr string

	cfg    Config
	source quantum.RandomSource
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "microcirq",
		Short: "A small state-vector quantum circuit simulator",
		Long: `microcirq simulates circuits of up to 24 qubits with a dense state vector.
It executes OpenQASM 2.0 files, draws the circuit as text, and runs a demo
circuit in a terminal UI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML config file")
	f.Uint64Var(&a.seed, "seed", 0, "seed for measurement draws (random when unset)")
	f.IntVar(&a.qubits, "qubits", tui.DefaultQubits, "qubits in the demo circuit")
	f.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the demo runs")

	root.AddCommand(a.newRunCmd(), a.newExportCmd(), a.newDemoCmd())
	return root
}

// setup loads the config file and applies explicitly set flags on top.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := a.seed
		cfg.Seed = &seed
	}
	if flags.Changed("qubits") {
		cfg.Qubits = a.qubits
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.source = cfg.source()
	a.logger, err = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return err
}

// newLogger returns an slog logger backed by a charmbracelet/log handler.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "microcirq",
	})
	return slog.New(handler), nil
}

func (a *app) programOptions() []quantum.Option {
	return []quantum.Option{
		quantum.WithRandomSource(a.source),
		quantum.WithLogger(a.logger),
	}
}
