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

// Package pins declares the exact component versions installed by devstack.
//
// Every externally installed component is pinned here rather than inline in
// the installation steps so that a version bump is a single-line change and
// the full matrix is reviewable in one place. The pins are compile-time
// constants on purpose: a provisioning run is only reproducible if the
// versions it installs are part of the binary, not part of a config file.
package pins
