// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
)

// Recorder tracks installation step outcomes on a dedicated Prometheus
// registry. A provisioning run is a batch process, so the primary consumer
// is the final report; the optional HTTP listener exists for watching long
// runs from another terminal or a fleet dashboard.
type Recorder struct {
	registry *prometheus.Registry

	stepDuration *prometheus.HistogramVec
	stepResult   *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "devstack_step_duration_seconds",
			Help: "Wall-clock duration of each installation step.",
			// Steps range from seconds (cleanup) to tens of minutes
			// (source builds).
			Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
		}, []string{"step"}),
		stepResult: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devstack_step_result_total",
			Help: "Installation step outcomes by result.",
		}, []string{"step", "result"}),
	}
	r.registry.MustRegister(r.stepDuration, r.stepResult)
	return r
}

// ObserveStep records one step execution.
func (r *Recorder) ObserveStep(step string, d time.Duration, err error) {
	r.stepDuration.WithLabelValues(step).Observe(d.Seconds())

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		result = "cancelled"
	default:
		result = "failure"
	}
	r.stepResult.WithLabelValues(step, result).Inc()
}

// Registry exposes the underlying registry for serving and testing.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Serve exposes /metrics on addr until ctx is cancelled. Always returns nil
// after shutdown; a listener that cannot start is a warning, not a
// provisioning failure.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: defaults.MetricsReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Warn("metrics listener unavailable", "addr", addr, "error", err)
		return nil
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("serving metrics", "addr", addr)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Warn("metrics server stopped", "error", err)
	}
	return nil
}
