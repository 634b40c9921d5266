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

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/dev-stack/pkg/runner"
)

const (
	// pciVendorNVIDIA is the PCI vendor ID assigned to NVIDIA.
	pciVendorNVIDIA = "0x10de"

	pciDevicesPath = "/sys/bus/pci/devices"

	nvidiaSMICommand = "nvidia-smi"
)

// collectGPU detects NVIDIA GPU presence by scanning the PCI device list
// for the NVIDIA vendor ID, then attempts to read the installed driver
// version via nvidia-smi. A missing or failing nvidia-smi is a warning
// only: the GPU may be present before its driver is installed, and the
// NVIDIA installation step handles that case.
func (p *Prober) collectGPU(ctx context.Context) (hasGPU bool, driverVersion string) {
	root := p.pciPath
	if root == "" {
		root = pciDevicesPath
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		slog.Warn("cannot scan PCI devices, assuming no GPU", "path", root, "error", err)
		return false, ""
	}

	for _, entry := range entries {
		b, err := os.ReadFile(filepath.Join(root, entry.Name(), "vendor"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(b)) == pciVendorNVIDIA {
			hasGPU = true
			break
		}
	}

	if !hasGPU {
		slog.Warn("no NVIDIA GPU detected, GPU steps will be skipped")
		return false, ""
	}

	if _, err := p.runner.LookPath(nvidiaSMICommand); err != nil {
		slog.Warn("NVIDIA GPU present but nvidia-smi not installed, driver version unknown")
		return true, ""
	}

	out, err := p.runner.Output(ctx, runner.Command(nvidiaSMICommand,
		"--query-gpu=driver_version", "--format=csv,noheader"))
	if err != nil {
		slog.Warn("nvidia-smi query failed, driver version unknown", "error", err)
		return true, ""
	}

	// Multi-GPU hosts report one line per device; the driver is shared.
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return true, strings.TrimSpace(out)
}
