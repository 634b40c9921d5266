/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli wires the devstack commands: provision runs the full
// installation recipe, probe prints the host profile without changing
// anything, and version reports build information. Errors surface as
// distinct exit codes so automation can tell an unsupported platform from
// a failed installation step.
package cli
