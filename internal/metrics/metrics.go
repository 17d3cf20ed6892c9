// Package metrics exposes Prometheus counters for generation calls and
// quiz outcomes. All methods are safe on a nil *Metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	llmRequests *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	mistakes    *prometheus.CounterVec
	exams       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		llmRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eliteprep_llm_requests_total",
				Help: "Generation requests by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		llmDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eliteprep_llm_request_duration_seconds",
				Help:    "Latency of generation requests",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30},
			},
			[]string{"purpose"},
		),
		mistakes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eliteprep_mistakes_recorded_total",
				Help: "Mistakes appended to the ledger",
			},
			[]string{"source"},
		),
		exams: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eliteprep_exams_submitted_total",
				Help: "Timed exams submitted, by trigger",
			},
			[]string{"trigger"},
		),
	}
	m.registry.MustRegister(m.llmRequests, m.llmDuration, m.mistakes, m.exams)
	return m
}

// ObserveLLMRequest records one provider call.
func (m *Metrics) ObserveLLMRequest(purpose string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	m.llmRequests.WithLabelValues(purpose, outcome).Inc()
	m.llmDuration.WithLabelValues(purpose).Observe(elapsed.Seconds())
}

// MistakeRecorded counts a ledger append. source is "practice" or "exam".
func (m *Metrics) MistakeRecorded(source string) {
	if m == nil {
		return
	}
	m.mistakes.WithLabelValues(source).Inc()
}

// ExamSubmitted counts an exam submission. trigger is "manual" or "timeout".
func (m *Metrics) ExamSubmitted(trigger string) {
	if m == nil {
		return
	}
	m.exams.WithLabelValues(trigger).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

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
