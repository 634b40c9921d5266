package runner

import (
	"bufio"
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecString(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "plain command",
			spec: Command("git", "clone", "https://example.com/repo.git"),
			want: "git clone https://example.com/repo.git",
		},
		{
			name: "sudo command",
			spec: Sudo("apt-get", "install", "-y", "curl"),
			want: "sudo apt-get install -y curl",
		},
		{
			name: "shell command",
			spec: Shell("curl -fsSL https://example.com | sh"),
			want: "sh -c curl -fsSL https://example.com | sh",
		},
		{
			name: "sudo command with env",
			spec: Spec{
				Name: "apt-get",
				Args: []string{"update"},
				Env:  []string{"DEBIAN_FRONTEND=noninteractive"},
				Sudo: true,
			},
			want: "sudo DEBIAN_FRONTEND=noninteractive apt-get update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.String())
		})
	}
}

func TestExecRunnerRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell utilities")
	}

	r := NewExecRunner()
	ctx := context.Background()

	assert.NoError(t, r.Run(ctx, Command("true")))
	assert.Error(t, r.Run(ctx, Command("false")))
}

func TestExecRunnerOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell utilities")
	}

	r := NewExecRunner()
	out, err := r.Output(context.Background(), Command("echo", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecRunnerEnvReachesChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell utilities")
	}

	spec := Shell("echo $GREETING")
	spec.Env = []string{"GREETING=hello"}

	r := NewExecRunner()
	out, err := r.Output(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecRunnerOversizedOutputLine(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell utilities")
	}

	// A single line over the scanner cap must fail the run, not leave the
	// child blocked on a full pipe.
	r := NewExecRunner()
	err := r.Run(context.Background(),
		Shell("head -c 2097152 /dev/zero | tr '\\0' 'a'; echo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestExecRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner()
	err := r.Run(ctx, Command("true"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDryRunnerExecutesNothing(t *testing.T) {
	r := NewDryRunner()
	ctx := context.Background()

	assert.NoError(t, r.Run(ctx, Sudo("rm", "-rf", "/")))

	out, err := r.Output(ctx, Command("nvidia-smi"))
	require.NoError(t, err)
	assert.Empty(t, out)

	path, err := r.LookPath("docker")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/docker", path)
}

func TestRecordingCapturesSequence(t *testing.T) {
	r := NewRecording()
	ctx := context.Background()

	require.NoError(t, r.Run(ctx, Sudo("apt-get", "update")))
	require.NoError(t, r.Run(ctx, Sudo("apt-get", "install", "-y", "git")))

	assert.Equal(t, []string{
		"sudo apt-get update",
		"sudo apt-get install -y git",
	}, r.Commands())
	assert.True(t, r.ContainsCommand("sudo apt-get install"))
	assert.False(t, r.ContainsCommand("docker"))
}

func TestRecordingScriptedFailure(t *testing.T) {
	boom := errors.New("exit status 100")
	r := NewRecording().FailOn("sudo apt-get install", boom)

	require.NoError(t, r.Run(context.Background(), Sudo("apt-get", "update")))
	err := r.Run(context.Background(), Sudo("apt-get", "install", "-y", "git"))
	assert.ErrorIs(t, err, boom)

	// Both invocations were still recorded.
	assert.Len(t, r.Invocations, 2)
}

func TestRecordingScriptedOutput(t *testing.T) {
	r := NewRecording().RespondTo("nvidia-smi", "550.54.15")

	out, err := r.Output(context.Background(), Command("nvidia-smi",
		"--query-gpu=driver_version", "--format=csv,noheader"))
	require.NoError(t, err)
	assert.Equal(t, "550.54.15", out)
}

func TestRecordingMissingBinary(t *testing.T) {
	r := NewRecording().WithoutBinary("nvidia-smi")

	_, err := r.LookPath("nvidia-smi")
	assert.Error(t, err)

	path, err := r.LookPath("docker")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/docker", path)
}
