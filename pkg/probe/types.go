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

package probe

// DistroFamily is the coarse OS classification driving the package-manager
// choice.
type DistroFamily string

const (
	// FamilyUbuntu covers Ubuntu and is served by apt-get.
	FamilyUbuntu DistroFamily = "ubuntu"
	// FamilyRHEL covers RHEL-compatible distributions (RHEL, Rocky, Alma,
	// CentOS Stream, Fedora) and is served by dnf.
	FamilyRHEL DistroFamily = "rhel"
)

// SystemProfile is the immutable result of the environment probe. It is
// computed once at startup and passed by value into every component that
// needs it; nothing mutates it afterwards, which keeps the package-manager
// binding and the GPU-gated steps consistent for the whole run.
type SystemProfile struct {
	DistroFamily  DistroFamily `json:"distroFamily" yaml:"distroFamily"`
	DistroID      string       `json:"distroId" yaml:"distroId"`
	DistroVersion string       `json:"distroVersion" yaml:"distroVersion"`
	DistroName    string       `json:"distroName,omitempty" yaml:"distroName,omitempty"`

	HasGPU           bool   `json:"hasGpu" yaml:"hasGpu"`
	GPUDriverVersion string `json:"gpuDriverVersion,omitempty" yaml:"gpuDriverVersion,omitempty"`

	FreeDiskGB int    `json:"freeDiskGb" yaml:"freeDiskGb"`
	IsRoot     bool   `json:"isRoot" yaml:"isRoot"`
	Arch       string `json:"arch" yaml:"arch"`
	NumCPU     int    `json:"numCpu" yaml:"numCpu"`
	Home       string `json:"home" yaml:"home"`
	User       string `json:"user" yaml:"user"`
}
