// Package logging provides structured logging utilities for devstack.
//
// # Overview
//
// This package wraps the standard library slog package with devstack
// defaults and conventions. It supports environment-based log level
// configuration (LOG_LEVEL), module/version context injection, source
// location tracking for debug logs, and mirroring of every record as a
// plain timestamped line to the installation log file.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger with the installation log mirror:
//
//	closer, err := logging.SetDefaultWithFileMirror("devstack", version, "info", logPath)
//	if err != nil {
//	    slog.Warn("log file unavailable, console only", "error", err)
//	}
//	if closer != nil {
//	    defer closer.Close()
//	}
//
//	slog.Info("installing base packages", "step", "base")
//	slog.Warn("gpu present but driver tool missing")
//	slog.Error("step failed", "step", "docker", "error", err)
//
// # Output Format
//
// Console logs are written to stderr in JSON format:
//
//	{"time":"2025-01-15T10:30:00.123Z","level":"INFO","msg":"installing base packages","module":"devstack","version":"v1.0.0","step":"base"}
//
// The mirrored log file carries the same records as plain lines:
//
//	2025-01-15 10:30:00 [INFO] installing base packages step=base
//
// The plain form stays free of ANSI color codes so the file remains usable
// with grep and in support bundles.
package logging
