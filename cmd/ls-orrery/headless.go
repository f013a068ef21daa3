package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/version"
)

// Snapshot flags
var (
	snapFrames int
	snapDelta  float64
	snapWidth  int
	snapHeight int
	snapASCII  bool
	snapPause  bool
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames headless and print the last one",
		Long: `Build the scene, advance it a number of fixed-length frames and print
the final frame followed by the slider readouts and orbital angles.

Output is plain ASCII when stdout is not a terminal or --ascii is set.`,
		Args: cobra.NoArgs,
		RunE: runSnapshot,
	}
	f := cmd.Flags()
	f.IntVar(&snapFrames, "frames", 60, "Number of frames to advance")
	f.Float64Var(&snapDelta, "dt", 1.0/30, "Seconds per frame")
	f.IntVar(&snapWidth, "width", 80, "Canvas width in cells")
	f.IntVar(&snapHeight, "height", 24, "Canvas height in cells")
	f.BoolVar(&snapASCII, "ascii", false, "Force plain ASCII output")
	f.BoolVar(&snapPause, "pause", false, "Pause before advancing")
	return cmd
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	logger, closer, err := openLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	if snapFrames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", snapFrames)
	}
	if math.IsNaN(snapDelta) || math.IsInf(snapDelta, 0) || snapDelta < 0 {
		return fmt.Errorf("dt must be a finite non-negative number, got %v", snapDelta)
	}

	app, err := orrery.New(buildConfig(), orrery.WithLogger(logger.With("orrery")))
	if err != nil {
		return err
	}
	if err := app.Apply(orrery.Resize{Width: snapWidth, Height: snapHeight * 2}); err != nil {
		return fmt.Errorf("snapshot size %dx%d: %w", snapWidth, snapHeight, err)
	}
	if snapPause {
		if err := app.Apply(orrery.TogglePause{}); err != nil {
			return err
		}
	}

	for i := 0; i < snapFrames; i++ {
		app.Advance(snapDelta)
	}
	logger.Debug("Advanced %d frames of %.3fs", snapFrames, snapDelta)

	out := cmd.OutOrStdout()
	canvas := app.Render()
	if snapASCII || !isTerminal(out) {
		fmt.Fprintln(out, canvas.Text())
	} else {
		fmt.Fprintln(out, canvas.Styled())
	}
	writeStatus(out, app)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeStatus prints the pause state, slider readouts and orbital angles.
func writeStatus(w io.Writer, app *orrery.App) {
	fmt.Fprintf(w, "[%s] theme=%s\n", strings.ToLower(app.PauseLabel()), app.Theme())

	var parts []string
	for _, s := range app.Sliders() {
		b, _ := app.System().Body(s.Body)
		deg := math.Mod(b.Angle*180/math.Pi, 360)
		if deg < 0 {
			deg += 360
		}
		parts = append(parts, fmt.Sprintf("%s %s %.1f°", s.Body, s.Readout, deg))
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the body catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), catalogTable(catalog.Default()))
			return nil
		},
	}
}

func catalogTable(c catalog.Catalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Body", "Radius", "Distance", "Orbit rad/s", "Spin rad/s", "Color")
	for _, b := range c {
		t.Row(
			b.Name,
			fmt.Sprintf("%.1f", b.Radius),
			fmt.Sprintf("%.0f", b.Distance),
			fmt.Sprintf("%.4f", b.OrbitalSpeed),
			fmt.Sprintf("%.3f", b.RotationSpeed),
			fmt.Sprintf("#%06x", b.Color),
		)
	}
	return t.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-orrery v%s\n", version.Version)
		},
	}
}
