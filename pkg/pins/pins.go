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

package pins

// Python toolchain.
const (
	// Python is the interpreter series installed from the supplementary
	// package source (deadsnakes on Ubuntu, dnf module stream on RHEL).
	Python = "3.10"
)

// Deep-learning frameworks installed into the virtual environment.
const (
	Torch            = "2.3.1"
	TorchVision      = "0.18.1"
	TorchCPUIndexURL = "https://download.pytorch.org/whl/cpu"
	TorchGPUIndexURL = "https://download.pytorch.org/whl/cu121"

	TensorFlow = "2.16.1"
)

// Numeric, data, and classic-ML libraries.
const (
	NumPy        = "1.26.4"
	Pandas       = "2.2.2"
	SciKitLearn  = "1.5.0"
	Matplotlib   = "3.9.0"
	JupyterLab   = "4.2.2"
)

// NVIDIA stack.
const (
	// DriverMajor is the driver branch installed from the CUDA repository.
	DriverMajor = "550"
	CUDAToolkit = "12-4"

	// TensorRT is the deb revision pinned on Ubuntu; RHEL tracks the
	// repository's current build.
	TensorRT = "10.0.1.6-1+cuda12.4"

	// TritonImage and CUDAImage are pulled once docker is configured so the
	// first model-serving session does not start with a multi-GB download.
	TritonImage = "nvcr.io/nvidia/tritonserver:24.05-py3"
	CUDAImage   = "nvidia/cuda:12.4.1-devel-ubuntu22.04"
)

// Edge and mobile inference SDKs installed into the virtual environment.
const (
	ONNX           = "1.16.1"
	ONNXRuntime    = "1.18.0"
	ONNXSimplifier = "0.4.36"
	OpenVINO       = "2024.2.0"
	NNCF           = "2.11.0"
	TVM            = "0.16.0"
	PaddlePaddle   = "2.6.1"
	PaddleLite     = "2.13rc0"
	MNN            = "2.8.1"
	TFLiteRuntime  = "2.14.0"
	Ultralytics    = "8.2.28"
	Optimum        = "1.20.0"
	Timm           = "1.0.7"
)

// Source-built components, cloned at these refs.
const (
	LlamaCppRef = "b3091"
	NCNNRef     = "20240410"
	ArmNNRef    = "v24.05"
)
