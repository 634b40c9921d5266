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
	"runtime"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// Option configures a Prober.
type Option func(*Prober)

// WithRunner sets the command runner used for external queries.
func WithRunner(r runner.Runner) Option {
	return func(p *Prober) {
		p.runner = r
	}
}

// WithReleasePath overrides the os-release file location.
func WithReleasePath(path string) Option {
	return func(p *Prober) {
		p.releasePath = path
	}
}

// WithPCIPath overrides the PCI device directory scanned for GPUs.
func WithPCIPath(path string) Option {
	return func(p *Prober) {
		p.pciPath = path
	}
}

// WithPingHost overrides the reachability probe target.
func WithPingHost(host string) Option {
	return func(p *Prober) {
		p.pingHost = host
	}
}

// WithMinDiskGB overrides the free disk requirement.
func WithMinDiskGB(gb int) Option {
	return func(p *Prober) {
		p.minDiskGB = gb
	}
}

// WithHome overrides the home directory checked for disk space.
func WithHome(home string) Option {
	return func(p *Prober) {
		p.home = home
	}
}

// WithEUID overrides the effective-UID source. Tests use this to simulate
// running as root.
func WithEUID(fn func() int) Option {
	return func(p *Prober) {
		p.euid = fn
	}
}

// WithDiskFree overrides the free-disk probe. Tests use this to simulate
// low-disk hosts.
func WithDiskFree(fn func(path string) (int, error)) Option {
	return func(p *Prober) {
		p.diskFree = fn
	}
}

// WithoutPrivilegeCheck disables the root/sudo checks. Used by the
// read-only probe command, which must work on hosts where the caller has no
// sudo access.
func WithoutPrivilegeCheck() Option {
	return func(p *Prober) {
		p.skipPrivilege = true
	}
}

// WithoutNetworkCheck disables the reachability probe.
func WithoutNetworkCheck() Option {
	return func(p *Prober) {
		p.skipNetwork = true
	}
}

// WithoutDiskCheck disables the free-disk threshold. The profile still
// records the measured free space; only the precondition failure is
// suppressed, so a read-only probe works on hosts too small to provision.
func WithoutDiskCheck() Option {
	return func(p *Prober) {
		p.skipDisk = true
	}
}

// Prober computes the SystemProfile. All host touchpoints (files, external
// binaries, UID) are injectable so the probe logic is testable on any host.
type Prober struct {
	runner      runner.Runner
	releasePath string
	pciPath     string
	pingHost    string
	minDiskGB   int
	home        string

	euid     func() int
	diskFree func(path string) (int, error)

	skipPrivilege bool
	skipNetwork   bool
	skipDisk      bool
}

// New creates a Prober with production defaults.
func New(opts ...Option) *Prober {
	p := &Prober{
		runner:    runner.NewExecRunner(),
		pingHost:  defaults.PingHost,
		minDiskGB: defaults.MinFreeDiskGB,
		euid:      os.Geteuid,
		diskFree:  freeDiskGB,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe computes the SystemProfile or fails the whole run. Precondition
// failures surface before any installation step executes; GPU absence and a
// missing driver tool are soft warnings recorded in the profile.
func (p *Prober) Probe(ctx context.Context) (*SystemProfile, error) {
	slog.Info("probing environment")

	ctx, cancel := context.WithTimeout(ctx, defaults.ProbeTimeout)
	defer cancel()

	rel, err := p.collectRelease()
	if err != nil {
		return nil, err
	}
	slog.Info("detected distribution",
		"id", rel.id, "version", rel.version, "family", rel.family)

	home := p.home
	if home == "" {
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePrecondition,
				"cannot determine home directory", err)
		}
	}

	free, err := p.checkDisk(home)
	if err != nil {
		return nil, err
	}

	if !p.skipNetwork {
		if err := p.checkNetwork(ctx); err != nil {
			return nil, err
		}
	}

	if !p.skipPrivilege {
		if err := p.checkPrivilege(ctx); err != nil {
			return nil, err
		}
	}

	hasGPU, driver := p.collectGPU(ctx)
	if hasGPU {
		slog.Info("detected NVIDIA GPU", "driverVersion", driver)
	}

	profile := &SystemProfile{
		DistroFamily:     rel.family,
		DistroID:         rel.id,
		DistroVersion:    rel.version,
		DistroName:       rel.name,
		HasGPU:           hasGPU,
		GPUDriverVersion: driver,
		FreeDiskGB:       free,
		IsRoot:           p.euid() == 0,
		Arch:             runtime.GOARCH,
		NumCPU:           runtime.NumCPU(),
		Home:             home,
		User:             os.Getenv("USER"),
	}

	return profile, nil
}
