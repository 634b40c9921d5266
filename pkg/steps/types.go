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

package steps

import (
	"context"
	"path/filepath"

	"github.com/NVIDIA/dev-stack/pkg/config"
	"github.com/NVIDIA/dev-stack/pkg/pkgmgr"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
	"github.com/NVIDIA/dev-stack/pkg/sysd"
)

// Env carries the read-only dependencies every step runs against. The
// profile and binding are computed once by the prober and adapter; steps
// never mutate them.
type Env struct {
	Profile  probe.SystemProfile
	Binding  pkgmgr.Binding
	Runner   runner.Runner
	Config   config.Config
	Services sysd.ServiceManager
}

// VenvPython returns the interpreter inside the virtual environment.
func (e *Env) VenvPython() string {
	return filepath.Join(e.Config.VenvDir, "bin", "python")
}

// VenvPip returns the package installer inside the virtual environment.
func (e *Env) VenvPip() string {
	return filepath.Join(e.Config.VenvDir, "bin", "pip")
}

// Step is one ordered unit of the provisioning recipe: a name, an optional
// condition on the system profile, and an action composed of external
// commands. Steps have no dependency graph and no retry; the orchestrator
// runs them top to bottom and stops at the first failure.
type Step struct {
	// Name identifies the step in logs, metrics, and error context.
	Name string
	// Description is a one-line summary for the provisioning plan.
	Description string
	// Condition gates the step on the system profile; nil means always
	// run. A false condition is a logged no-op, not an error.
	Condition func(probe.SystemProfile) bool
	// Run executes the step's command sequence.
	Run func(ctx context.Context, env *Env) error
}

// Applies reports whether the step runs for the given profile.
func (s Step) Applies(p probe.SystemProfile) bool {
	return s.Condition == nil || s.Condition(p)
}

// requiresGPU is the condition shared by the GPU-gated steps.
func requiresGPU(p probe.SystemProfile) bool {
	return p.HasGPU
}

// Recipe returns the fixed, ordered installation recipe.
func Recipe() []Step {
	return []Step{
		BasePackages(),
		PythonToolchain(),
		VirtualEnv(),
		NVIDIAStack(),
		Docker(),
		DevTooling(),
		AITooling(),
		Cleanup(),
	}
}
