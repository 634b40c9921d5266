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

// VirtualEnv creates the project virtualenv and installs the pinned ML
// foundation. Torch wheels come from the CUDA index on GPU hosts and the
// CPU index everywhere else.
func VirtualEnv() Step {
	return Step{
		Name:        "venv",
		Description: "Python virtual environment and ML foundation",
		Run: func(ctx context.Context, env *Env) error {
			if err := env.Runner.Run(ctx, runner.Command(
				"python"+pins.Python, "-m", "venv", env.Config.VenvDir)); err != nil {
				return err
			}

			pip := env.VenvPip()
			if err := env.Runner.Run(ctx, runner.Command(pip,
				"install", "--upgrade", "pip", "setuptools", "wheel")); err != nil {
				return err
			}

			index := pins.TorchCPUIndexURL
			if env.Profile.HasGPU {
				index = pins.TorchGPUIndexURL
			}
			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"torch=="+pins.Torch,
				"torchvision=="+pins.TorchVision,
				"--index-url", index)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"tensorflow=="+pins.TensorFlow)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"numpy=="+pins.NumPy,
				"pandas=="+pins.Pandas,
				"scikit-learn=="+pins.SciKitLearn,
				"matplotlib=="+pins.Matplotlib,
				"jupyterlab=="+pins.JupyterLab)); err != nil {
				return err
			}

			slog.Info("virtual environment ready",
				"path", env.Config.VenvDir, "gpu", env.Profile.HasGPU)
			return nil
		},
	}
}
