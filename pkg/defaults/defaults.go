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

package defaults

import "time"

// Prober timeouts and thresholds.
const (
	// ProbeTimeout bounds the whole environment probe.
	ProbeTimeout = 30 * time.Second

	// PingTimeout bounds the single network reachability probe.
	PingTimeout = 10 * time.Second

	// PingHost is the host used for the reachability probe.
	PingHost = "8.8.8.8"

	// MinFreeDiskGB is the minimum free space required on the home
	// filesystem before installation starts.
	MinFreeDiskGB = 20

	// MinUbuntuMajor and MinRHELMajor are the oldest supported releases.
	MinUbuntuMajor = 20
	MinRHELMajor   = 8
)

// Privilege keep-alive.
const (
	// SudoRefreshInterval is how often the cached sudo credential is
	// refreshed while provisioning runs.
	SudoRefreshInterval = 60 * time.Second

	// SudoValidateTimeout bounds the initial credential check.
	SudoValidateTimeout = 30 * time.Second
)

// Query timeouts for informational version lookups in the final report.
// Failures here render as "Not found" rather than aborting.
const (
	VersionQueryTimeout = 10 * time.Second
)

// Filesystem defaults, overridable via the optional config file.
const (
	// LogFilePath is the fixed installation log location.
	LogFilePath = "/tmp/devstack-install.log"

	// InstallDirName is the persistent installation directory under $HOME.
	InstallDirName = ".devstack"

	// VenvDirName is the virtual environment directory under InstallDirName.
	VenvDirName = "venv"
)

// Metrics defaults.
const (
	// MetricsReadHeaderTimeout protects the optional metrics listener from
	// slow-header connections.
	MetricsReadHeaderTimeout = 5 * time.Second
)
