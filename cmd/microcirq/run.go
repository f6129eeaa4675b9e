package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"microcirq/qasm"
	"microcirq/quantum"
	"microcirq/render"
)

const watchDebounce = 100 * time.Millisecond

func (a *app) newRunCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run [file.qasm]",
		Short: "Execute a QASM file, or the demo circuit, and print the diagram and register",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				p, err := a.demoProgram()
				if err != nil {
					return err
				}
				return a.print(out, p)
			case watch:
				return a.watchFile(cmd.Context(), args[0], out)
			default:
				return a.runFile(args[0], out)
			}
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "run again whenever the file changes")
	return cmd
}

func (a *app) newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [file.qasm]",
		Short: "Normalize a QASM file, or export the demo circuit, as OpenQASM 2.0",
		Long: `export parses the file, replays it on the simulator and writes the
operation log back out as OpenQASM. Without a file it exports the demo circuit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *quantum.Program
				err error
			)
			if len(args) == 0 {
				p, err = a.demoProgram()
			} else {
				p, err = a.loadProgram(args[0])
			}
			if err != nil {
				return err
			}

			src := qasm.Export(p.Operations(), p.NumQubits(), p.NumClassicalBits())
			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), src)
				return err
			}
			if err := os.WriteFile(output, []byte(src), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("exported", "file", output, "operations", len(p.Operations()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

// demoProgram builds and runs the demo circuit at the configured size.
func (a *app) demoProgram() (*quantum.Program, error) {
	opts := append(a.programOptions(), quantum.WithClassicalBits(a.cfg.Qubits))
	p, err := quantum.NewProgram(a.cfg.Qubits, opts...)
	if err != nil {
		return nil, err
	}
	if err := quantum.BuildDemo(p); err != nil {
		return nil, err
	}
	return p, nil
}

// loadProgram parses a QASM file and replays it on a new program.
func (a *app) loadProgram(path string) (*quantum.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	script, err := qasm.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := script.NewProgram(a.programOptions()...)
	if err != nil {
		return nil, err
	}
	if err := script.Apply(p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("program loaded", "file", path, "program", p.ID().String(), "operations", len(p.Operations()))
	return p, nil
}

func (a *app) runFile(path string, out io.Writer) error {
	p, err := a.loadProgram(path)
	if err != nil {
		return err
	}
	return a.print(out, p)
}

func (a *app) print(out io.Writer, p *quantum.Program) error {
	if _, err := io.WriteString(out, p.Draw(render.Diagram{Styled: a.cfg.Styled})); err != nil {
		return err
	}
	return p.Execute(render.TextReporter{W: out, Styled: a.cfg.Styled})
}

// watchFile runs path once, then again after every write to it, until ctx is
// done. Failed runs are logged and do not stop the watch.
func (a *app) watchFile(ctx context.Context, path string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	runOnce := func() {
		if err := a.runFile(path, out); err != nil {
			a.logger.Error("run failed", "file", path, "err", err)
		}
	}
	runOnce()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			a.logger.Info("file changed, running again", "file", path)
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "err", err)
		}
	}
}
