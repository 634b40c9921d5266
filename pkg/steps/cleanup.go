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
	"log/slog"

	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// Cleanup removes installer downloads and drains the package manager cache.
// It only runs after every install step succeeded, so partial-failure state
// stays on disk for inspection.
func Cleanup() Step {
	return Step{
		Name:        "cleanup",
		Description: "Installer artifact and package cache cleanup",
		Run: func(ctx context.Context, env *Env) error {
			if err := env.Runner.Run(ctx, runner.Shell(
				"rm -f /tmp/devstack-*")); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, env.Binding.CleanCache()); err != nil {
				return err
			}
			slog.Info("cleanup complete")
			return nil
		},
	}
}
