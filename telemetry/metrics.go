// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	Events   *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Renders  *prometheus.CounterVec

	RosterSize prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		Events = promauto.NewCounterVec(prometheus.CounterOpts{Name: "lobby_events_total", Help: "Number of lobby events handled"}, []string{"kind"})
		Failures = promauto.NewCounterVec(prometheus.CounterOpts{Name: "lobby_failures_total", Help: "Number of failed platform or file operations"}, []string{"op", "kind"})
		Renders = promauto.NewCounterVec(prometheus.CounterOpts{Name: "lobby_renders_total", Help: "Number of status renders by outcome"}, []string{"outcome"})
		RosterSize = promauto.NewGauge(prometheus.GaugeOpts{Name: "lobby_roster_size", Help: "Current number of users tracked in the lobby"})
	})
}

func CountEvent(kind string) {
	if Events != nil {
		Events.WithLabelValues(kind).Inc()
	}
}

func CountFailure(op, kind string) {
	if Failures != nil {
		Failures.WithLabelValues(op, kind).Inc()
	}
}

func CountRender(outcome string) {
	if Renders != nil {
		Renders.WithLabelValues(outcome).Inc()
	}
}

func SetRosterSize(n int) {
	if RosterSize != nil {
		RosterSize.Set(float64(n))
	}
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a context carrying a fresh correlation id.
func WithCorrelation(ctx context.Context) context.Context {
	return context.WithValue(ctx, corrKey, uuid.NewString())
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// Logger returns the default logger with the corr attribute if present.
func Logger(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
