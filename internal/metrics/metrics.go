// Package metrics exposes Prometheus counters for frames, commands and hover
// hits, and an optional HTTP endpoint to scrape them.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orrery/internal/logging"
)

var (
	framesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ls_orrery_frames_total",
			Help: "Total number of animation frames advanced.",
		},
	)

	frameDeltaSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ls_orrery_frame_delta_seconds",
			Help:    "Elapsed time between animation frames in seconds.",
			Buckets: []float64{0.005, 0.01, 0.02, 0.033, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_orrery_commands_total",
			Help: "Total number of control commands applied.",
		},
		[]string{"command"},
	)

	hoverHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_orrery_hover_hits_total",
			Help: "Total number of pointer moves that landed on a body.",
		},
		[]string{"body"},
	)
)

func init() {
	prometheus.MustRegister(framesTotal)
	prometheus.MustRegister(frameDeltaSeconds)
	prometheus.MustRegister(commandsTotal)
	prometheus.MustRegister(hoverHitsTotal)
}

// Recorder feeds application activity into the package collectors.
type Recorder struct{}

// NewRecorder returns a Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Frame counts one advanced frame.
func (Recorder) Frame(delta float64) {
	framesTotal.Inc()
	frameDeltaSeconds.Observe(delta)
}

// Command counts one applied command.
func (Recorder) Command(name string) {
	commandsTotal.WithLabelValues(name).Inc()
}

// Hover counts one hover hit on body.
func (Recorder) Hover(body string) {
	hoverHitsTotal.WithLabelValues(body).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Metrics listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Metrics server stopped")
	return nil
}
