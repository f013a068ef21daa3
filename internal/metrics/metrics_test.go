package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orrery"
)

var _ orrery.Observer = Recorder{}

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	frames := testutil.ToFloat64(framesTotal)
	resets := testutil.ToFloat64(commandsTotal.WithLabelValues("reset_speeds"))
	earth := testutil.ToFloat64(hoverHitsTotal.WithLabelValues("Earth"))

	r.Frame(0.016)
	r.Frame(0.017)
	r.Command("reset_speeds")
	r.Hover("Earth")

	if got := testutil.ToFloat64(framesTotal) - frames; got != 2 {
		t.Errorf("frames delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(commandsTotal.WithLabelValues("reset_speeds")) - resets; got != 1 {
		t.Errorf("reset_speeds delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(hoverHitsTotal.WithLabelValues("Earth")) - earth; got != 1 {
		t.Errorf("Earth hover delta = %v, want 1", got)
	}
}

func TestRecorderWithApp(t *testing.T) {
	cfg := orrery.DefaultConfig()
	cfg.Seed = 3
	cfg.StarCount = 10
	app, err := orrery.New(cfg, orrery.WithObserver(NewRecorder()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := testutil.ToFloat64(commandsTotal.WithLabelValues("toggle_pause"))
	_ = app.Apply(orrery.TogglePause{})
	_ = app.Apply(orrery.TogglePause{})
	if got := testutil.ToFloat64(commandsTotal.WithLabelValues("toggle_pause")) - before; got != 2 {
		t.Errorf("toggle_pause delta = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	NewRecorder().Frame(0.02)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"ls_orrery_frames_total", "ls_orrery_frame_delta_seconds_bucket"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", logging.Discard()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeBadAddr(t *testing.T) {
	err := Serve(context.Background(), "256.0.0.1:bad", logging.Discard())
	if err == nil {
		t.Error("Serve with a bad address should fail")
	}
}
