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

package pkgmgr

import (
	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// Binding maps a distro family to its concrete package-manager commands.
// It is derived deterministically from the SystemProfile, once, and shared
// read-only by every installation step.
type Binding struct {
	// Name is the package manager binary.
	Name string
	// Family is the distro family the binding serves.
	Family probe.DistroFamily

	installArgs []string
	updateArgs  []string
	cleanArgs   []string
	env         []string
}

// Install builds the Spec installing the given packages.
func (b Binding) Install(pkgs ...string) runner.Spec {
	spec := runner.Sudo(b.Name, append(append([]string{}, b.installArgs...), pkgs...)...)
	spec.Env = b.env
	return spec
}

// Update builds the Spec refreshing the package index.
func (b Binding) Update() runner.Spec {
	spec := runner.Sudo(b.Name, b.updateArgs...)
	spec.Env = b.env
	return spec
}

// CleanCache builds the Spec clearing the package manager's cache.
func (b Binding) CleanCache() runner.Spec {
	return runner.Sudo(b.Name, b.cleanArgs...)
}

// Resolve returns the Binding for the given family. Only the two families
// the prober can produce are mapped; anything else is a logic error that
// the prober's platform validation should have made unreachable.
func Resolve(family probe.DistroFamily) (Binding, error) {
	switch family {
	case probe.FamilyUbuntu:
		return Binding{
			Name:        "apt-get",
			Family:      family,
			installArgs: []string{"install", "-y"},
			updateArgs:  []string{"update"},
			cleanArgs:   []string{"clean"},
			env:         []string{"DEBIAN_FRONTEND=noninteractive"},
		}, nil
	case probe.FamilyRHEL:
		return Binding{
			Name:        "dnf",
			Family:      family,
			installArgs: []string{"install", "-y"},
			updateArgs:  []string{"makecache", "--refresh"},
			cleanArgs:   []string{"clean", "all"},
		}, nil
	default:
		return Binding{}, errors.NewWithContext(errors.ErrCodeInternal,
			"no package manager mapping for distro family",
			map[string]any{"family": string(family)})
	}
}
