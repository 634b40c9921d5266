// Package runner abstracts external command execution for devstack.
//
// Every installation step describes its external commands as runner.Spec
// values and executes them through the Runner interface. This keeps the
// provisioning recipe testable: unit tests substitute a Recording runner and
// assert on the exact sequence of invocations without performing real
// installs, while production code uses ExecRunner and --dry-run uses
// DryRunner.
//
//	env.Runner.Run(ctx, runner.Sudo("apt-get", "install", "-y", "git"))
//
// ExecRunner streams combined stdout/stderr into the structured log at
// debug level, so external tool output lands in the installation log file
// without being buffered in memory.
package runner
