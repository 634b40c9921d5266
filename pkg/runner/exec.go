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

package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// sudoCommand is the privilege-elevation helper binary.
const sudoCommand = "sudo"

// ExecRunner executes Specs via os/exec. Each invocation is logged before it
// starts and its combined output is streamed line by line into the log at
// debug level, so the installation log file captures external tool output
// without buffering multi-GB compile logs in memory.
type ExecRunner struct {
}

// NewExecRunner creates a production runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) build(ctx context.Context, spec Spec) *exec.Cmd {
	var cmd *exec.Cmd

	// Env assignments for sudo specs travel as leading argv words: sudoers
	// env_reset strips inherited variables before the target command runs,
	// but sudo applies VAR=val arguments itself.
	switch {
	case spec.Shell && spec.Sudo:
		args := append(append([]string{}, spec.Env...), "sh", "-c", spec.Name)
		cmd = exec.CommandContext(ctx, sudoCommand, args...)
	case spec.Shell:
		cmd = exec.CommandContext(ctx, "sh", "-c", spec.Name)
	case spec.Sudo:
		args := append(append([]string{}, spec.Env...), spec.Name)
		args = append(args, spec.Args...)
		cmd = exec.CommandContext(ctx, sudoCommand, args...)
	default:
		cmd = exec.CommandContext(ctx, spec.Name, spec.Args...)
	}

	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 && !spec.Sudo {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}
	return cmd
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Info("executing", "command", spec.String())

	cmd := r.build(ctx, spec)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", spec.String(), err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		slog.Debug(scanner.Text(), "command", spec.Name)
	}

	// A scan error (line over the buffer cap) abandons the pipe while the
	// child may still be writing; keep draining so Wait cannot block on a
	// full pipe.
	scanErr := scanner.Err()
	if scanErr != nil {
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("command %q failed: %w", spec.String(), err)
	}
	if scanErr != nil {
		return fmt.Errorf("reading output of %q: %w", spec.String(), scanErr)
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	slog.Debug("querying", "command", spec.String())

	out, err := r.build(ctx, spec).Output()
	if err != nil {
		return "", fmt.Errorf("command %q failed: %w", spec.String(), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DryRunner logs every Spec without executing anything. Output queries
// return empty strings, which downstream consumers render as "Not found".
type DryRunner struct {
}

// NewDryRunner creates a runner for --dry-run mode.
func NewDryRunner() *DryRunner {
	return &DryRunner{}
}

// Run implements Runner.
func (r *DryRunner) Run(ctx context.Context, spec Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Info("dry-run", "command", spec.String())
	return nil
}

// Output implements Runner.
func (r *DryRunner) Output(ctx context.Context, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	slog.Info("dry-run (query)", "command", spec.String())
	return "", nil
}

// LookPath implements Runner. Every binary resolves in dry-run mode so
// conditional logic takes the same path a real run would.
func (r *DryRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}
