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

// Package steps defines the ordered installation recipe.
//
// Each step is a named unit of work over a shared Env: the probed system
// profile, the package-manager binding, the command runner, and resolved
// configuration. Steps declare an optional Condition so hardware-gated work
// (the NVIDIA stack, GPU wheel variants) is skipped rather than attempted on
// hosts that cannot use it. Recipe returns the steps in their one supported
// order; the provisioner executes them front to back and stops at the first
// failure.
package steps
