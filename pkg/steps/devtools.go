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
	"path/filepath"
	"strconv"

	"github.com/NVIDIA/dev-stack/pkg/pins"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// DevTooling installs the editor, the shell environment, and a local
// llama.cpp build, then makes the install directory reachable from both
// login shells.
func DevTooling() Step {
	return Step{
		Name:        "devtools",
		Description: "Editor, shell environment, and local inference builds",
		Run: func(ctx context.Context, env *Env) error {
			if err := installVSCode(ctx, env); err != nil {
				return err
			}
			if err := installOhMyZsh(ctx, env); err != nil {
				return err
			}
			if err := buildLlamaCpp(ctx, env); err != nil {
				return err
			}
			return appendShellPath(ctx, env)
		},
	}
}

func installVSCode(ctx context.Context, env *Env) error {
	switch env.Profile.DistroFamily {
	case probe.FamilyUbuntu:
		if err := env.Runner.Run(ctx, runner.Shell(
			"wget -qO- https://packages.microsoft.com/keys/microsoft.asc | gpg --dearmor | sudo tee /usr/share/keyrings/microsoft.gpg > /dev/null")); err != nil {
			return err
		}
		if err := env.Runner.Run(ctx, runner.Shell(
			`echo "deb [arch=amd64,arm64 signed-by=/usr/share/keyrings/microsoft.gpg] https://packages.microsoft.com/repos/code stable main" | sudo tee /etc/apt/sources.list.d/vscode.list > /dev/null`)); err != nil {
			return err
		}
		if err := env.Runner.Run(ctx, env.Binding.Update()); err != nil {
			return err
		}
	case probe.FamilyRHEL:
		if err := env.Runner.Run(ctx, runner.Sudo("rpm", "--import",
			"https://packages.microsoft.com/keys/microsoft.asc")); err != nil {
			return err
		}
		if err := env.Runner.Run(ctx, runner.Shell(
			`printf '[code]\nname=Visual Studio Code\nbaseurl=https://packages.microsoft.com/yumrepos/vscode\nenabled=1\ngpgcheck=1\ngpgkey=https://packages.microsoft.com/keys/microsoft.asc\n' | sudo tee /etc/yum.repos.d/vscode.repo > /dev/null`)); err != nil {
			return err
		}
	}
	return env.Runner.Run(ctx, env.Binding.Install("code"))
}

// installOhMyZsh runs the upstream installer unattended so it neither
// switches the shell nor drops into zsh mid-provision.
func installOhMyZsh(ctx context.Context, env *Env) error {
	spec := runner.Shell(
		`sh -c "$(wget -qO- https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh)"`)
	spec.Env = []string{"RUNZSH=no", "CHSH=no"}
	return env.Runner.Run(ctx, spec)
}

func buildLlamaCpp(ctx context.Context, env *Env) error {
	dir := filepath.Join(env.Config.InstallDir, "llama.cpp")
	if err := env.Runner.Run(ctx, runner.Command("git", "clone",
		"--branch", pins.LlamaCppRef, "--depth", "1",
		"https://github.com/ggerganov/llama.cpp.git", dir)); err != nil {
		return err
	}

	cmake := runner.Command("cmake", "-B", "build")
	if env.Profile.HasGPU {
		cmake.Args = append(cmake.Args, "-DGGML_CUDA=ON")
	}
	cmake.Dir = dir
	if err := env.Runner.Run(ctx, cmake); err != nil {
		return err
	}

	build := runner.Command("cmake", "--build", "build",
		"--config", "Release", "-j", strconv.Itoa(env.Profile.NumCPU))
	build.Dir = dir
	if err := env.Runner.Run(ctx, build); err != nil {
		return err
	}

	slog.Info("llama.cpp built", "ref", pins.LlamaCppRef, "cuda", env.Profile.HasGPU)
	return nil
}

// appendShellPath exports the install dir from both rc files so binaries
// built under it resolve in new bash and zsh sessions alike.
func appendShellPath(ctx context.Context, env *Env) error {
	line := fmt.Sprintf(`export PATH="%s/bin:$PATH"`, env.Config.InstallDir)
	for _, rc := range []string{".bashrc", ".zshrc"} {
		path := filepath.Join(env.Profile.Home, rc)
		if err := env.Runner.Run(ctx, runner.Shell(
			fmt.Sprintf("echo '%s' >> %s", line, path))); err != nil {
			return err
		}
	}
	return nil
}
