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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

func cpuProfile() probe.SystemProfile {
	return probe.SystemProfile{
		DistroFamily:  probe.FamilyUbuntu,
		DistroID:      "ubuntu",
		DistroVersion: "22.04",
	}
}

func TestCollectVersions(t *testing.T) {
	rec := runner.NewRecording().
		RespondTo("/opt/venv/bin/python --version", "Python 3.10.14\n").
		RespondTo("docker --version", "Docker version 26.1.3, build b72abbb").
		RespondTo("git --version", "git version 2.43.0").
		RespondTo("cmake --version", "cmake version 3.28.3\n\nCMake suite maintained by Kitware")

	c := NewCollector(rec, cpuProfile(), "/opt/venv/bin")
	rep := c.Collect(t.Context(), nil, time.Now())

	got := map[string]string{}
	for _, tv := range rep.Tools {
		got[tv.Name] = tv.Version
	}
	assert.Equal(t, "Python 3.10.14", got["python"])
	assert.Equal(t, "Docker version 26.1.3, build b72abbb", got["docker"])
	assert.Equal(t, "cmake version 3.28.3", got["cmake"])
	assert.NotEmpty(t, rep.RunID)
}

func TestCollectMissingToolRendersNotFound(t *testing.T) {
	rec := runner.NewRecording().WithoutBinary("docker")

	c := NewCollector(rec, cpuProfile(), "/opt/venv/bin")
	rep := c.Collect(t.Context(), nil, time.Now())

	got := map[string]string{}
	for _, tv := range rep.Tools {
		got[tv.Name] = tv.Version
	}
	assert.Equal(t, NotFound, got["docker"])
}

func TestCollectGPUQueriesGated(t *testing.T) {
	names := func(rep *Report) []string {
		var out []string
		for _, tv := range rep.Tools {
			out = append(out, tv.Name)
		}
		return out
	}

	c := NewCollector(runner.NewRecording(), cpuProfile(), "/opt/venv/bin")
	rep := c.Collect(t.Context(), nil, time.Now())
	assert.NotContains(t, names(rep), "nvcc")
	assert.NotContains(t, names(rep), "nvidia-driver")

	gpu := cpuProfile()
	gpu.HasGPU = true
	rec := runner.NewRecording().
		RespondTo("nvidia-smi", "550.54.15\n").
		RespondTo("nvcc --version", strings.Join([]string{
			"nvcc: NVIDIA (R) Cuda compiler driver",
			"Cuda compilation tools, release 12.4, V12.4.131",
		}, "\n"))
	c = NewCollector(rec, gpu, "/opt/venv/bin")
	rep = c.Collect(t.Context(), nil, time.Now())

	got := map[string]string{}
	for _, tv := range rep.Tools {
		got[tv.Name] = tv.Version
	}
	assert.Equal(t, "550.54.15", got["nvidia-driver"])
	assert.Equal(t, "12.4", got["nvcc"])
}

func TestRenderConsole(t *testing.T) {
	rep := &Report{
		RunID:    "test-run",
		Duration: 42 * time.Minute,
		Distro:   "ubuntu 22.04",
		Steps: []StepResult{
			{Name: "base", Status: StatusCompleted, Duration: 3 * time.Minute},
			{Name: "nvidia", Status: StatusSkipped},
		},
		Tools: []ToolVersion{
			{Name: "git", Version: "git version 2.43.0"},
			{Name: "docker", Version: NotFound},
		},
	}

	var sb strings.Builder
	require.NoError(t, RenderConsole(&sb, rep))
	out := sb.String()

	assert.Contains(t, out, "Installation Complete")
	assert.Contains(t, out, "Base")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, NotFound)
	assert.Contains(t, out, "new shell")
}

func TestRenderConsoleFailedRun(t *testing.T) {
	rep := &Report{
		RunID:  "test-run",
		Distro: "ubuntu 22.04",
		Steps: []StepResult{
			{Name: "base", Status: StatusCompleted, Duration: 3 * time.Minute},
			{Name: "python", Status: StatusFailed, Duration: time.Minute},
		},
	}
	require.True(t, rep.Failed())

	var sb strings.Builder
	require.NoError(t, RenderConsole(&sb, rep))
	out := sb.String()

	// The partial step table renders with a failure heading, not the
	// success banner and its re-login hint.
	assert.Contains(t, out, "Installation Failed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Base")
	assert.NotContains(t, out, "Installation Complete")
	assert.NotContains(t, out, "new shell")
}
