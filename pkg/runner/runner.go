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
	"context"
	"strings"
)

// Spec describes a single external command invocation. Specs are pure data:
// building one performs no side effects, which lets installation steps be
// asserted against a recording runner without touching the host.
type Spec struct {
	// Name is the command binary, resolved via PATH at execution time.
	Name string
	// Args are the command arguments.
	Args []string
	// Dir is the working directory; empty means the process working directory.
	Dir string
	// Env are additional environment entries in KEY=VALUE form. Plain
	// invocations get them appended to the inherited environment; sudo
	// invocations get them as leading argv words so sudoers env_reset
	// cannot strip them before the target command runs.
	Env []string
	// Sudo prefixes the invocation with the privilege-elevation helper.
	Sudo bool
	// Stdin is fed to the command's standard input when non-empty.
	Stdin string
	// Shell runs Name and Args joined as a single "sh -c" command line.
	// Reserved for invocations that genuinely need shell features, such as
	// piping an installer script into an interpreter.
	Shell bool
}

// Command creates a Spec for a plain invocation.
func Command(name string, args ...string) Spec {
	return Spec{Name: name, Args: args}
}

// Sudo creates a Spec for an invocation through the elevation helper.
func Sudo(name string, args ...string) Spec {
	return Spec{Name: name, Args: args, Sudo: true}
}

// Shell creates a Spec executed through "sh -c".
func Shell(cmdline string) Spec {
	return Spec{Name: cmdline, Shell: true}
}

// String renders the Spec roughly as it would appear on a command line.
// Used for logging and for recording-runner assertions. For sudo specs the
// env assignments are part of the rendered argv, matching how they are
// actually passed (see ExecRunner.build).
func (s Spec) String() string {
	var b strings.Builder
	if s.Sudo {
		b.WriteString("sudo ")
		for _, e := range s.Env {
			b.WriteString(e)
			b.WriteString(" ")
		}
	}
	if s.Shell {
		b.WriteString("sh -c ")
	}
	b.WriteString(s.Name)
	for _, a := range s.Args {
		b.WriteString(" ")
		b.WriteString(a)
	}
	return b.String()
}

// Runner executes command Specs. The production implementation shells out;
// test implementations record or script invocations.
type Runner interface {
	// Run executes the spec, streaming combined output to the log, and
	// returns an error on non-zero exit.
	Run(ctx context.Context, spec Spec) error
	// Output executes the spec and returns its trimmed standard output.
	Output(ctx context.Context, spec Spec) (string, error)
	// LookPath reports the absolute path of a binary, or an error when the
	// binary is not installed.
	LookPath(name string) (string, error)
}
