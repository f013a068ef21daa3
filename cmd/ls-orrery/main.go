// Command ls-orrery is an animated 3D solar system for the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/ui"
)

// Global flags
var (
	seed        uint64
	starCount   int
	noWrap      bool
	fov         float64
	fps         int
	logLevel    string
	logFile     string
	metricsAddr string
)

const (
	minFOV = 20.0
	maxFOV = 120.0
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ls-orrery",
		Short: "Animated 3D solar system in the terminal",
		Long: `ls-orrery renders the sun and eight planets orbiting in 3D.

Hover a body to see its name, drag to orbit the camera, scroll to zoom,
and use the control panel to change each planet's orbital speed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := root.PersistentFlags()
	pf.Uint64Var(&seed, "seed", 0, "Random seed for stars and starting angles (0 = time based)")
	pf.IntVar(&starCount, "stars", orrery.DefaultConfig().StarCount, "Number of background stars")
	pf.BoolVar(&noWrap, "no-wrap", false, "Let orbital angles grow without wrapping at 2π")
	pf.Float64Var(&fov, "fov", orrery.DefaultConfig().FOV, "Camera vertical field of view in degrees")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "Append logs to this file")

	root.Flags().IntVar(&fps, "fps", ui.DefaultFPS, "Animation frames per second (5-60)")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(newSnapshotCmd(), newCatalogCmd(), newVersionCmd())
	return root
}

// buildConfig applies the global flags to the default configuration.
func buildConfig() orrery.Config {
	cfg := orrery.DefaultConfig()
	cfg.Seed = seed
	cfg.StarCount = max(starCount, 0)
	cfg.WrapAngles = !noWrap

	// Validate field of view
	cfg.FOV = fov
	if cfg.FOV < minFOV {
		cfg.FOV = minFOV
	} else if cfg.FOV > maxFOV {
		cfg.FOV = maxFOV
	}
	return cfg
}

// openLogger returns the logger for this run. Without --log-file, output goes
// to fallback.
func openLogger(fallback io.Writer) (*logging.Logger, io.Closer, error) {
	level := logging.ParseLevel(logLevel)
	if logFile != "" {
		return logging.Open(logFile, level)
	}
	return logging.NewWithWriter(level, fallback), io.NopCloser(nil), nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// The TUI owns the terminal, so logs are dropped unless a file is given.
	logger, closer, err := openLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := buildConfig()
	opts := []orrery.Option{orrery.WithLogger(logger.With("orrery"))}

	if metricsAddr != "" {
		opts = append(opts, orrery.WithObserver(metrics.NewRecorder()))
		go func() {
			if err := metrics.Serve(ctx, metricsAddr, logger.With("metrics")); err != nil {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
	}

	app, err := orrery.New(cfg, opts...)
	if err != nil {
		return err
	}

	rate := ui.ClampFPS(fps)
	logger.Info("Starting TUI: %d stars, fov %.0f, %d fps", cfg.StarCount, cfg.FOV, rate)

	model := ui.New(app, logger.With("ui"), rate)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
