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
	"log/slog"
	"strings"

	"github.com/distribution/reference"

	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/pins"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// NVIDIAStack installs the driver, the CUDA toolkit, TensorRT, the container
// toolkit, and the reference container images. It only runs when the prober
// found NVIDIA silicon.
func NVIDIAStack() Step {
	return Step{
		Name:        "nvidia",
		Description: "NVIDIA driver, CUDA toolkit, TensorRT, container runtime",
		Condition:   requiresGPU,
		Run: func(ctx context.Context, env *Env) error {
			if err := addCUDARepo(ctx, env); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, env.Binding.Update()); err != nil {
				return err
			}

			driver := driverPackage(env.Profile)
			if err := env.Runner.Run(ctx, env.Binding.Install(driver)); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, env.Binding.Install(
				"cuda-toolkit-"+pins.CUDAToolkit)); err != nil {
				return err
			}
			tensorrt := "tensorrt"
			if env.Profile.DistroFamily == probe.FamilyUbuntu {
				tensorrt = "tensorrt=" + pins.TensorRT
			}
			if err := env.Runner.Run(ctx, env.Binding.Install(tensorrt)); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, env.Binding.Install(
				"nvidia-container-toolkit")); err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, env.Binding.Install(
				"nsight-systems-cli")); err != nil {
				return err
			}

			slog.Info("nvidia stack installed",
				"driver", driver, "cuda", pins.CUDAToolkit)
			return nil
		},
	}
}

// addCUDARepo wires the NVIDIA CUDA package repository for the host distro.
func addCUDARepo(ctx context.Context, env *Env) error {
	switch env.Profile.DistroFamily {
	case probe.FamilyUbuntu:
		// Repo paths use the compact release form, e.g. ubuntu2204.
		rel := "ubuntu" + strings.ReplaceAll(env.Profile.DistroVersion, ".", "")
		url := fmt.Sprintf(
			"https://developer.download.nvidia.com/compute/cuda/repos/%s/x86_64/cuda-keyring_1.1-1_all.deb",
			rel)
		deb := "/tmp/devstack-cuda-keyring.deb"
		if err := env.Runner.Run(ctx, runner.Command("wget", "-q", "-O", deb, url)); err != nil {
			return err
		}
		return env.Runner.Run(ctx, runner.Sudo("dpkg", "-i", deb))
	case probe.FamilyRHEL:
		major := strings.SplitN(env.Profile.DistroVersion, ".", 2)[0]
		url := fmt.Sprintf(
			"https://developer.download.nvidia.com/compute/cuda/repos/rhel%s/x86_64/cuda-rhel%s.repo",
			major, major)
		return env.Runner.Run(ctx, runner.Sudo("dnf",
			"config-manager", "--add-repo", url))
	default:
		return errors.NewWithContext(errors.ErrCodeInternal,
			"no CUDA repository mapping for distro family",
			map[string]any{"family": string(env.Profile.DistroFamily)})
	}
}

func driverPackage(p probe.SystemProfile) string {
	if p.DistroFamily == probe.FamilyRHEL {
		return "nvidia-driver"
	}
	return "nvidia-driver-" + pins.DriverMajor
}

// pullImage validates the reference before handing it to docker. A bad pin
// should fail here, not halfway through a registry pull.
func pullImage(ctx context.Context, env *Env, img string) error {
	if _, err := reference.ParseNormalizedNamed(img); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"invalid container image reference", err,
			map[string]any{"image": img})
	}
	return env.Runner.Run(ctx, runner.Sudo("docker", "pull", img))
}
