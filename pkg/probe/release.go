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
	"fmt"
	"os"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/osfile"
	"github.com/NVIDIA/dev-stack/pkg/version"
)

var (
	filePathReleasePrimary  = "/etc/os-release"
	filePathReleaseFallback = "/usr/lib/os-release"
)

// rhelFamilyIDs are the os-release ID values classified as RHEL-compatible.
var rhelFamilyIDs = map[string]bool{
	"rhel":      true,
	"centos":    true,
	"rocky":     true,
	"almalinux": true,
	"fedora":    true,
}

// release holds the distribution fields extracted from os-release.
type release struct {
	family  DistroFamily
	id      string
	version string
	name    string
}

// collectRelease classifies the host distribution from its os-release file.
// Per the freedesktop.org spec, /usr/lib/os-release is consulted when the
// primary file does not exist. Unsupported or too-old distributions are
// fatal: nothing else in the recipe is meaningful without a package manager
// binding.
func (p *Prober) collectRelease() (*release, error) {
	root := p.releasePath
	if root == "" {
		root = filePathReleasePrimary
		if _, err := os.Stat(root); os.IsNotExist(err) {
			root = filePathReleaseFallback
		}
	}

	parser := osfile.NewParser(
		// Remove surrounding quotes per freedesktop.org spec.
		osfile.WithVTrimChars(`"'`),
	)

	fields, err := parser.GetMap(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedPlatform,
			fmt.Sprintf("failed to read os release from %s", root), err)
	}

	rel := &release{
		id:      fields["ID"],
		version: fields["VERSION_ID"],
		name:    fields["PRETTY_NAME"],
	}

	switch {
	case rel.id == "ubuntu":
		rel.family = FamilyUbuntu
	case rhelFamilyIDs[rel.id]:
		rel.family = FamilyRHEL
	default:
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			"unsupported distribution, expected Ubuntu or a RHEL-compatible OS",
			map[string]any{"id": rel.id, "name": rel.name})
	}

	if err := validateMinVersion(rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// validateMinVersion enforces the minimum supported releases:
// Ubuntu >= 20.04 and RHEL-family >= 8.
func validateMinVersion(rel *release) error {
	v, err := version.Parse(rel.version)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeUnsupportedPlatform,
			"unparseable os version", err,
			map[string]any{"id": rel.id, "version": rel.version})
	}

	minMajor := defaults.MinRHELMajor
	if rel.family == FamilyUbuntu {
		minMajor = defaults.MinUbuntuMajor
	}

	if !v.AtLeastMajor(minMajor) {
		return errors.NewWithContext(errors.ErrCodeUnsupportedPlatform,
			fmt.Sprintf("%s %s is below the minimum supported version %d",
				rel.id, rel.version, minMajor),
			map[string]any{"id": rel.id, "version": rel.version})
	}
	return nil
}
