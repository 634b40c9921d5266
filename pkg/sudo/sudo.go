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

package sudo

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// KeepAlive refreshes the cached sudo credential on a fixed interval until
// ctx is cancelled. It always returns nil: refresh failures are warnings
// because the next privileged command will surface the real error with its
// own context. Run it in the orchestrator's errgroup so it terminates
// deterministically when the run finishes instead of polling for process
// liveness.
func KeepAlive(ctx context.Context, r runner.Runner) error {
	return keepAlive(ctx, r, defaults.SudoRefreshInterval)
}

func keepAlive(ctx context.Context, r runner.Runner, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("sudo keep-alive stopped")
			return nil
		case <-ticker.C:
			// -n never prompts: if the credential expired the refresh
			// fails quietly and the next step's sudo prompts or fails.
			if err := r.Run(ctx, runner.Command("sudo", "-n", "true")); err != nil {
				slog.Warn("sudo refresh failed", "error", err)
			}
		}
	}
}
