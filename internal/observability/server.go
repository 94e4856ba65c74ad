// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package observability provides HTTP endpoints for metrics and health
// checks, and the Prometheus metrics recorded by the progression service.
package observability

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/progression"
)

// ReadinessChecker returns whether the service is ready to accept traffic.
type ReadinessChecker func() bool

// Metrics contains the Prometheus metrics recorded by the progression
// service. It implements progression.MetricsRecorder.
type Metrics struct {
	QuestAttempts       *prometheus.CounterVec
	SelectionSwitches   prometheus.Counter
	CompletionReversals prometheus.Counter
}

// NewMetrics creates and registers the progression metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QuestAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "questline_quest_attempts_total",
				Help: "Total number of quest attempts by outcome",
			},
			[]string{"outcome"},
		),
		SelectionSwitches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "questline_selection_switches_total",
				Help: "Total number of active character switches",
			},
		),
		CompletionReversals: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "questline_completion_reversals_total",
				Help: "Total number of reversed quest completions",
			},
		),
	}

	reg.MustRegister(m.QuestAttempts)
	reg.MustRegister(m.SelectionSwitches)
	reg.MustRegister(m.CompletionReversals)

	return m
}

// RecordQuestAttempt counts a processed quest attempt by outcome.
func (m *Metrics) RecordQuestAttempt(outcome string) {
	m.QuestAttempts.WithLabelValues(outcome).Inc()
}

// RecordSelectionSwitch counts an active character switch.
func (m *Metrics) RecordSelectionSwitch() {
	m.SelectionSwitches.Inc()
}

// RecordCompletionReversal counts a reversed completion.
func (m *Metrics) RecordCompletionReversal() {
	m.CompletionReversals.Inc()
}

// Server provides HTTP endpoints for metrics and health probes.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	isReady    ReadinessChecker
	running    atomic.Bool
}

// NewServer creates a new observability server listening on addr
// ("host:port" format).
func NewServer(addr string, readinessChecker ReadinessChecker) *Server {
	// Own registry to avoid polluting the global one.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
		isReady:  readinessChecker,
	}
}

// Metrics returns the progression metrics recorder.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start begins serving observability endpoints. It returns an error channel
// that receives any error from the HTTP server after startup; the channel is
// closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("observability server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("observability server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("observability server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the observability server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_observability_server").Wrap(err)
		}
	}

	slog.Info("observability server stopped")
	return nil
}

// Addr returns the address the server is listening on, or the empty string
// when not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("ok\n"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady == nil || s.isReady() {
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // health check write error is acceptable, client may disconnect
		w.Write([]byte("ok\n"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	//nolint:errcheck // health check write error is acceptable, client may disconnect
	w.Write([]byte("not ready\n"))
}

// Compile-time interface check.
var _ progression.MetricsRecorder = (*Metrics)(nil)
