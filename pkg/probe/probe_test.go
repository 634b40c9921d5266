package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/runner"
)

// writeOSRelease writes an os-release file and returns its path.
func writeOSRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writePCIDevice creates a fake PCI device directory with the given vendor.
func writePCIDevices(t *testing.T, vendors ...string) string {
	t.Helper()
	root := t.TempDir()
	for i, vendor := range vendors {
		dir := filepath.Join(root, "0000:00:0"+string(rune('0'+i))+".0")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor"), []byte(vendor+"\n"), 0o644))
	}
	return root
}

const ubuntu2204 = `NAME="Ubuntu"
ID=ubuntu
VERSION_ID="22.04"
PRETTY_NAME="Ubuntu 22.04.4 LTS"
`

const rocky93 = `NAME="Rocky Linux"
ID=rocky
VERSION_ID="9.3"
PRETTY_NAME="Rocky Linux 9.3 (Blue Onyx)"
`

func testProber(t *testing.T, rec *runner.Recording, osRelease string, opts ...Option) *Prober {
	t.Helper()
	base := []Option{
		WithRunner(rec),
		WithReleasePath(writeOSRelease(t, osRelease)),
		WithPCIPath(writePCIDevices(t, "0x8086")),
		WithHome(t.TempDir()),
		WithEUID(func() int { return 1000 }),
		WithDiskFree(func(string) (int, error) { return 50, nil }),
	}
	return New(append(base, opts...)...)
}

func TestProbeUbuntuNoGPU(t *testing.T) {
	rec := runner.NewRecording()
	p := testProber(t, rec, ubuntu2204)

	profile, err := p.Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, FamilyUbuntu, profile.DistroFamily)
	assert.Equal(t, "ubuntu", profile.DistroID)
	assert.Equal(t, "22.04", profile.DistroVersion)
	assert.False(t, profile.HasGPU)
	assert.Empty(t, profile.GPUDriverVersion)
	assert.Equal(t, 50, profile.FreeDiskGB)
	assert.False(t, profile.IsRoot)
	assert.Positive(t, profile.NumCPU)
	assert.NotEmpty(t, profile.Arch)

	// Preconditions were exercised through the runner.
	assert.True(t, rec.ContainsCommand("ping -c 1"))
	assert.True(t, rec.ContainsCommand("sudo -v"))
	// No GPU, so nvidia-smi was never invoked.
	assert.False(t, rec.ContainsCommand("nvidia-smi"))
}

func TestProbeRHELFamilyWithGPU(t *testing.T) {
	rec := runner.NewRecording().RespondTo("nvidia-smi", "550.54.15")
	p := testProber(t, rec, rocky93,
		WithPCIPath(writePCIDevices(t, "0x8086", "0x10de")))

	profile, err := p.Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, FamilyRHEL, profile.DistroFamily)
	assert.True(t, profile.HasGPU)
	assert.Equal(t, "550.54.15", profile.GPUDriverVersion)
}

func TestProbeGPUWithoutDriverToolIsWarning(t *testing.T) {
	rec := runner.NewRecording().WithoutBinary("nvidia-smi")
	p := testProber(t, rec, ubuntu2204,
		WithPCIPath(writePCIDevices(t, "0x10de")))

	profile, err := p.Probe(context.Background())
	require.NoError(t, err)

	assert.True(t, profile.HasGPU)
	assert.Empty(t, profile.GPUDriverVersion)
}

func TestProbeUnsupportedDistro(t *testing.T) {
	p := testProber(t, runner.NewRecording(), `ID=arch
VERSION_ID="2024.06"
PRETTY_NAME="Arch Linux"
`)

	_, err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupportedPlatform, errors.CodeOf(err))
}

func TestProbeTooOldVersions(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "ubuntu 18.04",
			content: `ID=ubuntu
VERSION_ID="18.04"
`,
		},
		{
			name: "centos 7",
			content: `ID=centos
VERSION_ID="7"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProber(t, runner.NewRecording(), tt.content)
			_, err := p.Probe(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeUnsupportedPlatform, errors.CodeOf(err))
		})
	}
}

func TestProbeInsufficientDisk(t *testing.T) {
	rec := runner.NewRecording()
	p := testProber(t, rec, ubuntu2204,
		WithDiskFree(func(string) (int, error) { return 5, nil }))

	_, err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePrecondition, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "insufficient disk space")

	// The disk check aborts before the network and privilege probes run.
	assert.Empty(t, rec.Commands())
}

func TestProbeLowDiskWithoutGate(t *testing.T) {
	rec := runner.NewRecording()
	p := testProber(t, rec, ubuntu2204,
		WithDiskFree(func(string) (int, error) { return 5, nil }),
		WithoutDiskCheck(),
		WithoutNetworkCheck(),
		WithoutPrivilegeCheck())

	// The read-only probe must report small hosts, not reject them; the
	// measured value still lands in the profile.
	profile, err := p.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, profile.FreeDiskGB)
}

func TestProbeNetworkFailure(t *testing.T) {
	rec := runner.NewRecording().FailOn("ping", assert.AnError)
	p := testProber(t, rec, ubuntu2204)

	_, err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePrecondition, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "network unreachable")

	// The failed probe halts before sudo validation.
	assert.False(t, rec.ContainsCommand("sudo -v"))
}

func TestProbeRejectsRoot(t *testing.T) {
	p := testProber(t, runner.NewRecording(), ubuntu2204,
		WithEUID(func() int { return 0 }))

	_, err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not run as root")
}

func TestProbeSudoUnavailable(t *testing.T) {
	rec := runner.NewRecording().WithoutBinary("sudo")
	p := testProber(t, rec, ubuntu2204)

	_, err := p.Probe(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePrecondition, errors.CodeOf(err))
}

func TestProbeSkipFlags(t *testing.T) {
	rec := runner.NewRecording()
	p := testProber(t, rec, ubuntu2204)
	WithoutNetworkCheck()(p)
	WithoutPrivilegeCheck()(p)

	_, err := p.Probe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.Commands())
}

func TestProbeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := testProber(t, runner.NewRecording(), ubuntu2204)
	_, err := p.Probe(ctx)
	assert.Error(t, err)
}
