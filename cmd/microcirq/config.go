package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"microcirq/quantum"
	"microcirq/tui"
)

// Config is the on-disk configuration. Flags given on the command line
// override the file.
type Config struct {
	// Qubits sizes the demo circuit. QASM files declare their own size.
	Qubits int `yaml:"qubits"`
	// Seed fixes the measurement draws. Unset means a fresh seed per run.
	Seed        *uint64       `yaml:"seed,omitempty"`
	Interval    time.Duration `yaml:"interval"`
	LogLevel    string        `yaml:"log_level"`
	Styled      bool          `yaml:"styled"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

func DefaultConfig() Config {
	return Config{
		Qubits:   tui.DefaultQubits,
		Interval: tui.DefaultInterval,
		LogLevel: "info",
		Styled:   true,
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Qubits < quantum.MinDemoQubits || c.Qubits > quantum.MaxQubits {
		errs = append(errs, fmt.Errorf("qubits must be in [%d, %d], got %d", quantum.MinDemoQubits, quantum.MaxQubits, c.Qubits))
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// source returns the random source for measurement draws.
func (c Config) source() quantum.RandomSource {
	if c.Seed != nil {
		return quantum.NewSeededSource(*c.Seed)
	}
	return quantum.NewSeededSource(uint64(time.Now().UnixNano()))
}
