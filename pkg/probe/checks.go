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
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// freeDiskGB reports the free space in whole GB on the filesystem holding
// path.
func freeDiskGB(path string) (int, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("statfs %q: %w", path, err)
	}
	free := uint64(st.Bavail) * uint64(st.Bsize)
	return int(free / (1 << 30)), nil
}

// checkDisk measures free disk space on the home filesystem and, unless the
// gate is skipped, enforces the provisioning minimum. The measured value is
// returned either way so the profile records it.
func (p *Prober) checkDisk(home string) (int, error) {
	free, err := p.diskFree(home)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodePrecondition,
			"failed to determine free disk space", err)
	}
	if !p.skipDisk && free < p.minDiskGB {
		return free, errors.NewWithContext(errors.ErrCodePrecondition,
			fmt.Sprintf("insufficient disk space: %dGB free, %dGB required",
				free, p.minDiskGB),
			map[string]any{"freeGB": free, "requiredGB": p.minDiskGB})
	}
	return free, nil
}

// checkNetwork performs the single reachability probe. A provisioning run
// downloads from a dozen vendor endpoints; one failed ping now is cheaper
// than a failed compile an hour in.
func (p *Prober) checkNetwork(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.PingTimeout)
	defer cancel()

	spec := runner.Command("ping", "-c", "1", "-W", "5", p.pingHost)
	if err := p.runner.Run(ctx, spec); err != nil {
		return errors.WrapWithContext(errors.ErrCodePrecondition,
			"network unreachable", err,
			map[string]any{"host": p.pingHost})
	}
	return nil
}

// checkPrivilege verifies the process is not running as root and that the
// elevation helper can grant privileges non-interactively or after a single
// prompt.
func (p *Prober) checkPrivilege(ctx context.Context) error {
	if p.euid() == 0 {
		return errors.New(errors.ErrCodePrecondition,
			"must not run as root: run as a regular user with sudo access")
	}

	if _, err := p.runner.LookPath("sudo"); err != nil {
		return errors.Wrap(errors.ErrCodePrecondition,
			"sudo not found, privilege elevation unavailable", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.SudoValidateTimeout)
	defer cancel()

	// -v prompts for the password if needed and caches the credential for
	// the keep-alive loop to refresh.
	if err := p.runner.Run(ctx, runner.Command("sudo", "-v")); err != nil {
		return errors.Wrap(errors.ErrCodePrecondition,
			"sudo validation failed, cannot obtain elevated privileges", err)
	}
	return nil
}
