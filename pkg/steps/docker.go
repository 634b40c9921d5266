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

	"github.com/NVIDIA/dev-stack/pkg/pins"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// Docker installs the engine via the upstream convenience script, adds the
// invoking user to the docker group, and on GPU hosts wires the NVIDIA
// runtime and pre-pulls the reference images.
func Docker() Step {
	return Step{
		Name:        "docker",
		Description: "Docker engine and container runtime configuration",
		Run: func(ctx context.Context, env *Env) error {
			if err := env.Runner.Run(ctx, runner.Command(
				"wget", "-q", "-O", "/tmp/devstack-get-docker.sh",
				"https://get.docker.com")); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, runner.Sudo(
				"sh", "/tmp/devstack-get-docker.sh")); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Sudo(
				"usermod", "-aG", "docker", env.Profile.User)); err != nil {
				return err
			}

			if !env.Profile.HasGPU {
				slog.Info("docker installed", "user", env.Profile.User)
				return nil
			}

			if err := env.Runner.Run(ctx, runner.Sudo(
				"nvidia-ctk", "runtime", "configure", "--runtime=docker")); err != nil {
				return err
			}
			if err := env.Services.Restart(ctx, "docker.service"); err != nil {
				return err
			}

			for _, img := range []string{pins.TritonImage, pins.CUDAImage} {
				if err := pullImage(ctx, env, img); err != nil {
					return err
				}
			}

			slog.Info("docker installed",
				"user", env.Profile.User, "nvidia_runtime", true)
			return nil
		},
	}
}
