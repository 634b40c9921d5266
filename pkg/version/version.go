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

// Package version parses and compares dotted version strings such as distro
// VERSION_ID values ("22.04", "9.3") and NVIDIA driver versions
// ("550.54.15"). Suffixes after the numeric components are preserved but
// ignored for comparison.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures.
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a parsed dotted version. Precision records how many components
// were present in the source string (1 to 3); comparisons only consider the
// components both sides actually carry.
type Version struct {
	Major     int    `json:"major" yaml:"major"`
	Minor     int    `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch     int    `json:"patch,omitempty" yaml:"patch,omitempty"`
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`
	Suffix    string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Parse parses a version string. Supported forms: "22", "22.04", "5.15.0",
// optionally with a "v" prefix or a "-..."/"+..." suffix after the digits.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	numeric := s
	for i := 1; i < len(s); i++ {
		if (s[i] == '-' || s[i] == '+') && s[i-1] >= '0' && s[i-1] <= '9' {
			numeric = s[:i]
			v.Suffix = s[i:]
			break
		}
	}

	parts := strings.Split(numeric, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}
	v.Precision = len(parts)
	return v, nil
}

// MustParse parses a version string and panics on failure. For hardcoded
// strings and tests only.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version.MustParse(%q): %v", s, err))
	}
	return v
}

// String renders the version with its original precision. The suffix is
// not included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Compare returns -1, 0, or 1 as v is older than, the same as, or newer
// than other. Only components within the lower of the two precisions are
// compared, so 22.04 equals 22 at major precision.
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)
	if precision == 0 {
		precision = 3
	}

	pairs := [3][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for i := 0; i < precision; i++ {
		if pairs[i][0] < pairs[i][1] {
			return -1
		}
		if pairs[i][0] > pairs[i][1] {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is equal to or newer than other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// AtLeastMajor reports whether v's major component is at least major.
func (v Version) AtLeastMajor(major int) bool {
	return v.Major >= major
}
