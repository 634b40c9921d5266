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

package provisioner

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/metrics"
	"github.com/NVIDIA/dev-stack/pkg/report"
	"github.com/NVIDIA/dev-stack/pkg/steps"
	"github.com/NVIDIA/dev-stack/pkg/sudo"
)

// Provisioner drives the recipe front to back, keeping sudo warm and
// metrics served for the duration of the run.
type Provisioner struct {
	env         *steps.Env
	recipe      []steps.Step
	recorder    *metrics.Recorder
	metricsAddr string
}

// Option customizes a Provisioner.
type Option func(*Provisioner)

// WithRecipe replaces the default recipe. Used by tests.
func WithRecipe(recipe []steps.Step) Option {
	return func(p *Provisioner) {
		p.recipe = recipe
	}
}

// WithMetricsListener exposes the run's Prometheus registry on addr for the
// duration of the run.
func WithMetricsListener(addr string) Option {
	return func(p *Provisioner) {
		p.metricsAddr = addr
	}
}

// New creates a Provisioner over the given environment.
func New(env *steps.Env, opts ...Option) *Provisioner {
	p := &Provisioner{
		env:      env,
		recipe:   steps.Recipe(),
		recorder: metrics.NewRecorder(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the recipe. It stops at the first step failure and returns
// the results of every step reached, so a failed run still reports what
// completed before the failure. The sudo keep-alive and the optional
// metrics listener live exactly as long as the step loop.
func (p *Provisioner) Run(ctx context.Context) ([]report.StepResult, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return sudo.KeepAlive(gctx, p.env.Runner)
	})
	if p.metricsAddr != "" {
		g.Go(func() error {
			return p.recorder.Serve(gctx, p.metricsAddr)
		})
	}

	results, stepErr := p.runSteps(runCtx)

	cancel()
	if err := g.Wait(); err != nil && stepErr == nil {
		stepErr = err
	}
	return results, stepErr
}

func (p *Provisioner) runSteps(ctx context.Context) ([]report.StepResult, error) {
	results := make([]report.StepResult, 0, len(p.recipe))
	for _, s := range p.recipe {
		if !s.Applies(p.env.Profile) {
			slog.Info("skipping step", "step", s.Name, "reason", "not applicable")
			results = append(results, report.StepResult{
				Name:   s.Name,
				Status: report.StatusSkipped,
			})
			continue
		}

		slog.Info("starting step", "step", s.Name, "description", s.Description)
		start := time.Now()
		err := s.Run(ctx, p.env)
		elapsed := time.Since(start)
		p.recorder.ObserveStep(s.Name, elapsed, err)

		if err != nil {
			results = append(results, report.StepResult{
				Name:     s.Name,
				Status:   report.StatusFailed,
				Duration: elapsed,
			})
			return results, wrapStepError(err, s.Name)
		}

		slog.Info("step complete", "step", s.Name, "duration", elapsed)
		results = append(results, report.StepResult{
			Name:     s.Name,
			Status:   report.StatusCompleted,
			Duration: elapsed,
		})
	}
	return results, nil
}

func wrapStepError(err error, step string) error {
	code := errors.ErrCodeStepFailed
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		code = errors.ErrCodeTimeout
	}
	return errors.WrapWithContext(code, "installation step failed", err,
		map[string]any{"step": step})
}
