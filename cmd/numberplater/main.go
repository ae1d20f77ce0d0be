package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numberplater/internal/config"
	"numberplater/internal/trace"
	"numberplater/internal/version"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfg config.Config
	// startDir is where config lookup begins; empty means the working directory.
	startDir string
	now      func() time.Time

	tracer   trace.Tracer
	cleanups []func()
}

func newApp() *app {
	return &app{now: time.Now, tracer: trace.Nop}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "numberplater",
		Short: "Find UK number plates that spell words",
		Long: `numberplater renders words as UK registration marks by swapping letters
for digits that look like them (o→0, e→3, s→5, ...), keeps only the marks
some plate format allows and ranks them by how readable they stay.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			if err := a.setupProfiling(cmd); err != nil {
				return err
			}
			return a.setupTracing(cmd)
		},
	}

	root.PersistentFlags().String("color", "", "colorize output (auto|on|off); defaults to [output].color")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("config", "", "config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|stage|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newScanCmd(a))
	root.AddCommand(newYearsCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCleanCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		a.cfg, err = config.LoadFile(path)
		return err
	}
	a.cfg, err = config.Load(a.startDir)
	return err
}

func (a *app) onClose(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

// close runs the registered cleanups in reverse order. On failure the trace
// ring buffer, if any, is dumped to stderr first.
func (a *app) close(failed bool) {
	if failed {
		if d, ok := a.tracer.(interface {
			Dump(w io.Writer, format trace.Format) error
		}); ok {
			fmt.Fprintln(os.Stderr, "trace: last events before failure")
			_ = d.Dump(os.Stderr, trace.FormatText)
		}
	}
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// errSilent marks failures that were already reported.
var errSilent = errors.New("command failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	a.close(err != nil)
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
