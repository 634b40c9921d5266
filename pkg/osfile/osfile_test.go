package osfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetMapOSRelease(t *testing.T) {
	path := writeTemp(t, `NAME="Ubuntu"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
ID=ubuntu
ID_LIKE=debian
VERSION_ID="22.04"
# a comment
PRETTY_NAME="Ubuntu 22.04.4 LTS"
`)

	parser := NewParser(WithVTrimChars(`"'`))
	m, err := parser.GetMap(path)
	require.NoError(t, err)

	assert.Equal(t, "ubuntu", m["ID"])
	assert.Equal(t, "22.04", m["VERSION_ID"])
	assert.Equal(t, "Ubuntu", m["NAME"])
	assert.NotContains(t, m, "# a comment")
}

func TestGetMapSkipsMalformedLines(t *testing.T) {
	path := writeTemp(t, "VALID=yes\nmalformed line without delimiter\nEMPTY=\n")

	m, err := NewParser().GetMap(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"VALID": "yes"}, m)
}

func TestGetLines(t *testing.T) {
	path := writeTemp(t, "one\n\n  two  \n# comment\nthree\n")

	lines, err := NewParser().GetLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestGetLinesKeepsCommentsWhenConfigured(t *testing.T) {
	path := writeTemp(t, "# kept\nvalue\n")

	lines, err := NewParser(WithSkipComments(false)).GetLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"# kept", "value"}, lines)
}

func TestGetLinesErrors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := NewParser().GetLines("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser().GetLines(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("exceeds max size", func(t *testing.T) {
		path := writeTemp(t, "KEY=value\n")
		_, err := NewParser(WithMaxSize(4)).GetLines(path)
		assert.ErrorContains(t, err, "maximum size")
	})

	t.Run("invalid utf8", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bin")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644))
		_, err := NewParser().GetLines(path)
		assert.ErrorContains(t, err, "UTF-8")
	})
}
