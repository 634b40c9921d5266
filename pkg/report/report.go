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

package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// NotFound is rendered for any tool whose version query failed. A missing
// binary after a successful run usually means the tool is only reachable
// from a new login shell, not that the install failed.
const NotFound = "Not found"

// StepStatus describes the outcome of one recipe step.
type StepStatus string

const (
	StatusCompleted StepStatus = "completed"
	StatusSkipped   StepStatus = "skipped"
	StatusFailed    StepStatus = "failed"
)

// StepResult is one recipe step's outcome and timing.
type StepResult struct {
	Name     string        `json:"name" yaml:"name"`
	Status   StepStatus    `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ToolVersion is one detected tool and its reported version.
type ToolVersion struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Report is the final provisioning summary.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Completed time.Time     `json:"completed" yaml:"completed"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Distro    string        `json:"distro" yaml:"distro"`
	GPU       bool          `json:"gpu" yaml:"gpu"`
	Steps     []StepResult  `json:"steps" yaml:"steps"`
	Tools     []ToolVersion `json:"tools" yaml:"tools"`
}

// Failed reports whether any step in the run failed.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// query describes one version probe: the command to run and how to reduce
// its output to a single version string.
type query struct {
	name   string
	spec   runner.Spec
	reduce func(string) string
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

// Collector gathers tool versions from the finished host.
type Collector struct {
	runner  runner.Runner
	profile probe.SystemProfile
	venvBin string
	timeout time.Duration
}

// NewCollector creates a Collector reading versions through the given
// runner. venvBin is the virtualenv's bin directory.
func NewCollector(r runner.Runner, profile probe.SystemProfile, venvBin string) *Collector {
	return &Collector{
		runner:  r,
		profile: profile,
		venvBin: venvBin,
		timeout: defaults.VersionQueryTimeout,
	}
}

// Collect builds the report for the given run, querying each tool with a
// bounded timeout. Query failures degrade to NotFound rather than erroring:
// the install already succeeded by the time a report is collected.
func (c *Collector) Collect(ctx context.Context, steps []StepResult, started time.Time) *Report {
	queries := []query{
		{"python", runner.Command(c.venvBin+"/python", "--version"), firstLine},
		{"pip", runner.Command(c.venvBin+"/pip", "--version"), firstLine},
		{"docker", runner.Command("docker", "--version"), firstLine},
		{"git", runner.Command("git", "--version"), firstLine},
		{"cmake", runner.Command("cmake", "--version"), firstLine},
	}
	if c.profile.HasGPU {
		queries = append(queries,
			query{"nvidia-driver", runner.Command("nvidia-smi",
				"--query-gpu=driver_version", "--format=csv,noheader"), firstLine},
			query{"nvcc", runner.Command("nvcc", "--version"), nvccRelease},
		)
	}

	tools := make([]ToolVersion, 0, len(queries))
	for _, q := range queries {
		tools = append(tools, ToolVersion{Name: q.name, Version: c.run(ctx, q)})
	}

	now := time.Now()
	return &Report{
		RunID:     uuid.NewString(),
		Completed: now,
		Duration:  now.Sub(started),
		Distro:    c.profile.DistroID + " " + c.profile.DistroVersion,
		GPU:       c.profile.HasGPU,
		Steps:     steps,
		Tools:     tools,
	}
}

func (c *Collector) run(ctx context.Context, q query) string {
	if _, err := c.runner.LookPath(q.spec.Name); err != nil {
		return NotFound
	}

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.runner.Output(qctx, q.spec)
	if err != nil || strings.TrimSpace(out) == "" {
		return NotFound
	}
	return q.reduce(out)
}

// nvccRelease extracts the release token from nvcc's multi-line banner,
// e.g. "Cuda compilation tools, release 12.4, V12.4.131" -> "12.4".
func nvccRelease(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if _, rest, ok := strings.Cut(line, "release "); ok {
			ver, _, _ := strings.Cut(rest, ",")
			return strings.TrimSpace(ver)
		}
	}
	return firstLine(out)
}
