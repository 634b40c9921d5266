/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dev-stack/pkg/probe"
	"github.com/NVIDIA/dev-stack/pkg/runner"
	"github.com/NVIDIA/dev-stack/pkg/serializer"
)

func probeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "probe",
		EnableShellCompletion: true,
		Usage:                 "Inspect the host and print the system profile",
		Description: `Probes the host the same way provision does and prints the resulting
profile: distro family and version, GPU presence and driver, free disk,
and architecture. By default the probe is read-only; --strict also
validates the provisioning preconditions (disk, network, sudo) and
fails the same way a provision run would.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on unmet provisioning preconditions",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			initLogger(cmd.String("log-level"))

			opts := []probe.Option{probe.WithRunner(runner.NewExecRunner())}
			if !cmd.Bool("strict") {
				opts = append(opts,
					probe.WithoutPrivilegeCheck(),
					probe.WithoutNetworkCheck(),
					probe.WithoutDiskCheck())
			}

			profile, err := probe.New(opts...).Probe(ctx)
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()
			return ser.Serialize(profile)
		},
	}
}
