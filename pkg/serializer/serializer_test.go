package serializer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Name    string            `json:"name" yaml:"name"`
	Count   int               `json:"count" yaml:"count"`
	Nested  inner             `json:"nested" yaml:"nested"`
	Tags    []string          `json:"tags" yaml:"tags"`
	Details map[string]string `json:"details" yaml:"details"`
}

type inner struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

func testValue() sample {
	return sample{
		Name:    "devstack",
		Count:   3,
		Nested:  inner{Enabled: true},
		Tags:    []string{"gpu", "cuda"},
		Details: map[string]string{"driver": "550"},
	}
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}

func TestSupportedFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(testValue()))

	var round sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &round))
	assert.Equal(t, testValue(), round)
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(testValue()))

	var round sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &round))
	assert.Equal(t, testValue(), round)
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(testValue()))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "devstack")
	assert.Contains(t, out, "Nested.Enabled")
	assert.Contains(t, out, "Tags.[0]")
	assert.Contains(t, out, "Details.driver")
}

func TestSerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestUnknownFormatFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(Format("xml"), &buf).Serialize(map[string]string{"a": "b"}))
	assert.Contains(t, buf.String(), "a: b")
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	w := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, w.Serialize(testValue()))
	require.NoError(t, w.Close())
	// Close twice is safe.
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: devstack")
}

func TestFileWriterBadPathFallsBackToStdout(t *testing.T) {
	w := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "no", "such", "dir", "f"))
	assert.NotNil(t, w)
	assert.NoError(t, w.Close())
}

func TestFileWriterEmptyPathIsStdout(t *testing.T) {
	w := NewFileWriterOrStdout(FormatJSON, "   ")
	assert.NotNil(t, w)
	assert.NoError(t, w.Close())
}
