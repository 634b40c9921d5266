/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dev-stack/pkg/config"
	"github.com/NVIDIA/dev-stack/pkg/logging"
	"github.com/NVIDIA/dev-stack/pkg/pkgmgr"
	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/provisioner"
	"github.com/NVIDIA/dev-stack/pkg/report"
	"github.com/NVIDIA/dev-stack/pkg/runner"
	"github.com/NVIDIA/dev-stack/pkg/serializer"
	"github.com/NVIDIA/dev-stack/pkg/steps"
	"github.com/NVIDIA/dev-stack/pkg/sysd"
)

func provisionCmd() *cli.Command {
	return &cli.Command{
		Name:                  "provision",
		EnableShellCompletion: true,
		Usage:                 "Probe the host and run the full installation recipe",
		Description: `Probes the host, validates the platform preconditions, and runs the
installation recipe front to back. The run stops at the first failed
step; completed steps are not rolled back, so a fixed run can be
retried from scratch.

With --dry-run every command is logged instead of executed and no
system state changes.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default is $HOME/.devstack.yaml)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Log every command without executing anything",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Mirror logs to the given file in plain format",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "Serve Prometheus metrics on the given address for the run's duration (e.g. :9090)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if addr := cmd.String("metrics-listen"); addr != "" {
				cfg.MetricsAddr = addr
			}
			if path := cmd.String("log-file"); path != "" {
				cfg.LogFile = path
			}

			closer, err := logging.SetDefaultWithFileMirror(
				name, version, cmd.String("log-level"), cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() {
				if err := closer.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
				}
			}()

			env, err := buildEnv(ctx, cfg, cmd.Bool("dry-run"))
			if err != nil {
				return err
			}

			started := time.Now()
			opts := []provisioner.Option{}
			if cfg.MetricsAddr != "" {
				opts = append(opts, provisioner.WithMetricsListener(cfg.MetricsAddr))
			}
			results, runErr := provisioner.New(env, opts...).Run(ctx)

			// A failed run still reports the steps it reached; the report
			// must not mask the run error.
			rep := report.NewCollector(env.Runner, env.Profile,
				env.Config.VenvDir+"/bin").Collect(ctx, results, started)
			if err := writeReport(cmd, outFormat, rep); err != nil {
				if runErr == nil {
					return err
				}
				slog.Warn("failed to write report", "error", err)
			}
			return runErr
		},
	}
}

// buildEnv probes the host and assembles the step environment. Dry-run swaps
// both effectful dependencies, the command runner and the service manager,
// for logging no-ops.
func buildEnv(ctx context.Context, cfg config.Config, dryRun bool) (*steps.Env, error) {
	var r runner.Runner = runner.NewExecRunner()
	var services sysd.ServiceManager = sysd.NewDBusManager()
	if dryRun {
		r = runner.NewDryRunner()
		services = &sysd.NoopManager{}
	}

	prober := probe.New(
		probe.WithRunner(r),
		probe.WithPingHost(cfg.PingHost),
	)
	profile, err := prober.Probe(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("host probed",
		"distro", profile.DistroID,
		"version", profile.DistroVersion,
		"gpu", profile.HasGPU,
		"free_disk_gb", profile.FreeDiskGB)

	binding, err := pkgmgr.Resolve(profile.DistroFamily)
	if err != nil {
		return nil, err
	}

	return &steps.Env{
		Profile:  *profile,
		Binding:  binding,
		Runner:   r,
		Config:   cfg,
		Services: services,
	}, nil
}

// writeReport renders the console summary for table output and defers to the
// serializer for machine formats.
func writeReport(cmd *cli.Command, format serializer.Format, rep *report.Report) error {
	out := cmd.String("output")
	if format == serializer.FormatTable && out == "" {
		return report.RenderConsole(os.Stdout, rep)
	}

	ser := serializer.NewFileWriterOrStdout(format, out)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return ser.Serialize(rep)
}
