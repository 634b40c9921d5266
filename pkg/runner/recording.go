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
	"sync"
)

// Recording captures every Spec a component executed, for assertions in
// tests. Results can be scripted per command prefix so tests can inject a
// failure into an arbitrary point of an installation sequence.
type Recording struct {
	mu sync.Mutex

	// Invocations holds the executed specs in order, Run and Output alike.
	Invocations []Spec

	// Outputs maps a command-line prefix (as rendered by Spec.String) to
	// the string returned from Output.
	Outputs map[string]string

	// Failures maps a command-line prefix to the error returned from Run
	// or Output when the prefix matches.
	Failures map[string]error

	// MissingBinaries lists binary names LookPath reports as not installed.
	MissingBinaries []string
}

// NewRecording creates an empty recording runner.
func NewRecording() *Recording {
	return &Recording{
		Outputs:  map[string]string{},
		Failures: map[string]error{},
	}
}

// FailOn scripts an error for any command whose rendered form starts with
// prefix.
func (r *Recording) FailOn(prefix string, err error) *Recording {
	r.Failures[prefix] = err
	return r
}

// RespondTo scripts an Output result for any command whose rendered form
// starts with prefix.
func (r *Recording) RespondTo(prefix, output string) *Recording {
	r.Outputs[prefix] = output
	return r
}

// WithoutBinary marks a binary as absent for LookPath.
func (r *Recording) WithoutBinary(name string) *Recording {
	r.MissingBinaries = append(r.MissingBinaries, name)
	return r
}

func (r *Recording) record(spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Invocations = append(r.Invocations, spec)
	for prefix, err := range r.Failures {
		if strings.HasPrefix(spec.String(), prefix) {
			return err
		}
	}
	return nil
}

// Run implements Runner.
func (r *Recording) Run(ctx context.Context, spec Spec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.record(spec)
}

// Output implements Runner.
func (r *Recording) Output(ctx context.Context, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := r.record(spec); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for prefix, out := range r.Outputs {
		if strings.HasPrefix(spec.String(), prefix) {
			return out, nil
		}
	}
	return "", nil
}

// LookPath implements Runner.
func (r *Recording) LookPath(name string) (string, error) {
	for _, missing := range r.MissingBinaries {
		if missing == name {
			return "", &missingBinaryError{name: name}
		}
	}
	return "/usr/bin/" + name, nil
}

// Commands returns the rendered form of every recorded invocation.
func (r *Recording) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Invocations))
	for i, spec := range r.Invocations {
		out[i] = spec.String()
	}
	return out
}

// ContainsCommand reports whether any recorded invocation starts with prefix.
func (r *Recording) ContainsCommand(prefix string) bool {
	for _, cmd := range r.Commands() {
		if strings.HasPrefix(cmd, prefix) {
			return true
		}
	}
	return false
}

type missingBinaryError struct {
	name string
}

func (e *missingBinaryError) Error() string {
	return "exec: " + e.name + ": executable file not found in $PATH"
}
