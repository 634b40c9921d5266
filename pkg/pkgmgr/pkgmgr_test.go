package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dev-stack/pkg/errors"
	"github.com/NVIDIA/dev-stack/pkg/probe"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		family      probe.DistroFamily
		wantInstall string
		wantUpdate  string
		wantClean   string
	}{
		{
			name:        "ubuntu uses apt-get",
			family:      probe.FamilyUbuntu,
			wantInstall: "sudo DEBIAN_FRONTEND=noninteractive apt-get install -y git curl",
			wantUpdate:  "sudo DEBIAN_FRONTEND=noninteractive apt-get update",
			wantClean:   "sudo apt-get clean",
		},
		{
			name:        "rhel family uses dnf",
			family:      probe.FamilyRHEL,
			wantInstall: "sudo dnf install -y git curl",
			wantUpdate:  "sudo dnf makecache --refresh",
			wantClean:   "sudo dnf clean all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Resolve(tt.family)
			require.NoError(t, err)

			assert.Equal(t, tt.wantInstall, b.Install("git", "curl").String())
			assert.Equal(t, tt.wantUpdate, b.Update().String())
			assert.Equal(t, tt.wantClean, b.CleanCache().String())
		})
	}
}

func TestResolveUnmappedFamilyIsInternalError(t *testing.T) {
	_, err := Resolve(probe.DistroFamily("gentoo"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}

func TestUbuntuBindingIsNonInteractive(t *testing.T) {
	b, err := Resolve(probe.FamilyUbuntu)
	require.NoError(t, err)

	// The assignment must ride the sudo argv, not the parent environment:
	// sudoers env_reset would strip it before apt-get runs.
	spec := b.Install("curl")
	assert.Contains(t, spec.Env, "DEBIAN_FRONTEND=noninteractive")
	assert.Equal(t,
		"sudo DEBIAN_FRONTEND=noninteractive apt-get install -y curl",
		spec.String())
}

func TestBindingSpecsAreIndependent(t *testing.T) {
	b, err := Resolve(probe.FamilyUbuntu)
	require.NoError(t, err)

	first := b.Install("one")
	second := b.Install("two", "three")

	assert.Equal(t,
		"sudo DEBIAN_FRONTEND=noninteractive apt-get install -y one",
		first.String())
	assert.Equal(t,
		"sudo DEBIAN_FRONTEND=noninteractive apt-get install -y two three",
		second.String())
}
