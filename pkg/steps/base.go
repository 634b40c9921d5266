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

	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// basePackagesCommon is installed on every distro family.
var basePackagesCommon = []string{
	"curl",
	"wget",
	"git",
	"zsh",
	"cmake",
	"unzip",
	"ca-certificates",
}

var basePackagesUbuntu = []string{
	"build-essential",
	"pkg-config",
	"software-properties-common",
	"gnupg",
	"lsb-release",
	"apt-transport-https",
	"iputils-ping",
}

var basePackagesRHEL = []string{
	"gcc",
	"gcc-c++",
	"make",
	"pkgconf-pkg-config",
	"dnf-plugins-core",
	"iputils",
}

// BasePackages installs the build toolchain and the fetch tools every later
// step depends on.
func BasePackages() Step {
	return Step{
		Name:        "base",
		Description: "Base packages and build toolchain",
		Run: func(ctx context.Context, env *Env) error {
			if err := env.Runner.Run(ctx, env.Binding.Update()); err != nil {
				return err
			}

			pkgs := append([]string{}, basePackagesCommon...)
			switch env.Profile.DistroFamily {
			case probe.FamilyUbuntu:
				pkgs = append(pkgs, basePackagesUbuntu...)
			case probe.FamilyRHEL:
				pkgs = append(pkgs, basePackagesRHEL...)
			}

			if err := env.Runner.Run(ctx, env.Binding.Install(pkgs...)); err != nil {
				return err
			}

			// The RHEL build toolchain comes as a package group.
			if env.Profile.DistroFamily == probe.FamilyRHEL {
				if err := env.Runner.Run(ctx, runner.Sudo("dnf",
					"groupinstall", "-y", "Development Tools")); err != nil {
					return err
				}
			}

			slog.Info("base packages installed", "count", len(pkgs))
			return nil
		},
	}
}
