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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/logging"
	"github.com/NVIDIA/dev-stack/pkg/serializer"
)

const (
	name           = "devstack"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the result to the given file instead of stdout",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatTable),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			serializer.SupportedFormats()),
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "AI workstation provisioning for Ubuntu and RHEL-family hosts",
		Version: version,
		Description: `Provisions a fresh Linux machine into an AI development workstation:
build toolchain, pinned Python environment with the ML foundation,
the NVIDIA driver and CUDA stack when a GPU is present, Docker with
the NVIDIA runtime, editors and shells, and the inference toolchain.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			provisionCmd(),
			probeCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI. Called by main.main.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First SIGINT/SIGTERM cancels the run context so the in-flight step's
	// subprocess is killed and the keep-alive winds down.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy to distinct process exit codes so
// wrapping automation can tell an unsupported host from a failed install.
func exitCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeUnsupportedPlatform:
		return 2
	case errors.ErrCodePrecondition:
		return 3
	case errors.ErrCodeInvalidConfig:
		return 4
	default:
		return 1
	}
}

func initLogger(level string) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"logLevel", level)
}
