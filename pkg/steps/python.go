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
	"fmt"

	"github.com/NVIDIA/dev-stack/pkg/pins"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// PythonToolchain installs the pinned interpreter. Ubuntu LTS releases ship
// an older python3, so the deadsnakes PPA supplies the pinned series there.
func PythonToolchain() Step {
	return Step{
		Name:        "python",
		Description: fmt.Sprintf("Python %s interpreter and venv support", pins.Python),
		Run: func(ctx context.Context, env *Env) error {
			py := "python" + pins.Python

			switch env.Profile.DistroFamily {
			case probe.FamilyUbuntu:
				if err := env.Runner.Run(ctx, runner.Sudo("add-apt-repository",
					"-y", "ppa:deadsnakes/ppa")); err != nil {
					return err
				}
				if err := env.Runner.Run(ctx, env.Binding.Update()); err != nil {
					return err
				}
				return env.Runner.Run(ctx, env.Binding.Install(
					py, py+"-venv", py+"-dev"))
			case probe.FamilyRHEL:
				return env.Runner.Run(ctx, env.Binding.Install(
					py, py+"-devel", py+"-pip"))
			default:
				// Prober guarantees a mapped family before steps run.
				return env.Runner.Run(ctx, env.Binding.Install(py))
			}
		},
	}
}
