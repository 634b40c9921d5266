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
	"path/filepath"
	"strconv"

	"github.com/NVIDIA/dev-stack/pkg/pins"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// AITooling fills the virtualenv with the pinned inference and optimization
// SDKs and builds the native inference engines from source.
func AITooling() Step {
	return Step{
		Name:        "aitools",
		Description: "Inference SDKs and optimization toolchain",
		Run: func(ctx context.Context, env *Env) error {
			pip := env.VenvPip()

			onnxRuntime := "onnxruntime==" + pins.ONNXRuntime
			if env.Profile.HasGPU {
				onnxRuntime = "onnxruntime-gpu==" + pins.ONNXRuntime
			}
			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"onnx=="+pins.ONNX,
				onnxRuntime,
				"onnxsim=="+pins.ONNXSimplifier)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"openvino=="+pins.OpenVINO,
				"nncf=="+pins.NNCF)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"apache-tvm=="+pins.TVM)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"paddlepaddle=="+pins.PaddlePaddle,
				"paddlelite=="+pins.PaddleLite)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"mnn=="+pins.MNN,
				"tflite-runtime=="+pins.TFLiteRuntime)); err != nil {
				return err
			}

			if err := env.Runner.Run(ctx, runner.Command(pip, "install",
				"ultralytics=="+pins.Ultralytics,
				"optimum=="+pins.Optimum,
				"timm=="+pins.Timm)); err != nil {
				return err
			}

			if err := buildNCNN(ctx, env); err != nil {
				return err
			}

			// Arm NN builds are only meaningful on arm64 silicon.
			if env.Profile.Arch == "arm64" {
				if err := buildArmNN(ctx, env); err != nil {
					return err
				}
			}

			slog.Info("ai tooling installed", "gpu", env.Profile.HasGPU)
			return nil
		},
	}
}

func buildNCNN(ctx context.Context, env *Env) error {
	dir := filepath.Join(env.Config.InstallDir, "ncnn")
	if err := env.Runner.Run(ctx, runner.Command("git", "clone",
		"--branch", pins.NCNNRef, "--depth", "1", "--recurse-submodules",
		"https://github.com/Tencent/ncnn.git", dir)); err != nil {
		return err
	}

	cmake := runner.Command("cmake", "-B", "build", "-DNCNN_BUILD_EXAMPLES=OFF")
	cmake.Dir = dir
	if err := env.Runner.Run(ctx, cmake); err != nil {
		return err
	}

	build := runner.Command("cmake", "--build", "build",
		"-j", strconv.Itoa(env.Profile.NumCPU))
	build.Dir = dir
	return env.Runner.Run(ctx, build)
}

func buildArmNN(ctx context.Context, env *Env) error {
	dir := filepath.Join(env.Config.InstallDir, "armnn")
	if err := env.Runner.Run(ctx, runner.Command("git", "clone",
		"--branch", pins.ArmNNRef, "--depth", "1",
		"https://github.com/ARM-software/armnn.git", dir)); err != nil {
		return err
	}

	cmake := runner.Command("cmake", "-B", "build", "-DBUILD_UNIT_TESTS=OFF")
	cmake.Dir = dir
	if err := env.Runner.Run(ctx, cmake); err != nil {
		return err
	}

	build := runner.Command("cmake", "--build", "build",
		"-j", strconv.Itoa(env.Profile.NumCPU))
	build.Dir = dir
	return env.Runner.Run(ctx, build)
}
