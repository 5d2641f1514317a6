// Package metrics provides Prometheus metrics for the PurbayanOS terminal.
//
// Counters are always recorded; they are only exposed over HTTP when the
// host is started with --metrics-addr.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Command dispatch metrics
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purbayanos_commands_total",
			Help: "Total number of dispatched commands",
		},
		[]string{"command", "status"},
	)

	// Flag hunt metrics
	flagsCapturedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purbayanos_flags_captured_total",
			Help: "Total number of newly captured flags",
		},
		[]string{"flag"},
	)

	// Snake metrics
	snakeGamesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purbayanos_snake_games_total",
			Help: "Total number of finished snake games",
		},
	)

	snakeScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purbayanos_snake_score",
			Help:    "Final score of finished snake games",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	snakeHighScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "purbayanos_snake_high_score",
			Help: "Highest snake score seen by this process",
		},
	)
)

// unknownCommand is the label used for names that aren't registered, so
// arbitrary user input can't blow up label cardinality.
const unknownCommand = "_unknown"

// RecordCommand counts one dispatched command.
func RecordCommand(name, status string) {
	if status == "not_found" {
		name = unknownCommand
	}
	commandsTotal.WithLabelValues(name, status).Inc()
}

// RecordFlag counts a newly captured flag.
func RecordFlag(n int) {
	flagsCapturedTotal.WithLabelValues(strconv.Itoa(n)).Inc()
}

// RecordSnakeGame counts a finished game, observes its score and tracks the
// best score.
func RecordSnakeGame(score, high int) {
	snakeGamesTotal.Inc()
	snakeScores.Observe(float64(score))
	snakeHighScore.Set(float64(high))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
