// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "warning alias", level: "WARNING", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "empty defaults to info", level: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", level: "verbose", want: slog.LevelInfo},
		{name: "mixed case", level: "DeBuG", want: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestStructuredLoggerIncludesModuleAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "devstack", "v1.2.3", "info")
	logger.Info("hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "devstack", record["module"])
	assert.Equal(t, "v1.2.3", record["version"])
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestStructuredLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLoggerTo(&buf, "devstack", "dev", "warn")

	logger.Info("suppressed")
	assert.Empty(t, buf.String())

	logger.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestPlainHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewPlainHandler(&buf, slog.LevelInfo)

	r := slog.NewRecord(
		time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		slog.LevelInfo, "installing base packages", 0)
	r.AddAttrs(slog.String("step", "base"))

	require.NoError(t, h.Handle(context.Background(), r))

	line := buf.String()
	assert.Equal(t, "2025-01-15 10:30:00 [INFO] installing base packages step=base\n", line)
	assert.NotContains(t, line, "\x1b[", "plain lines must not carry ANSI codes")
}

func TestPlainHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewPlainHandler(&buf, slog.LevelInfo).
		WithAttrs([]slog.Attr{slog.String("run", "abc")}).
		WithGroup("step")

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "slow", 0)
	r.AddAttrs(slog.Int("seconds", 90))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "run=abc")
	assert.Contains(t, buf.String(), "step.seconds=90")
}

func TestFanoutHandlerDuplicatesRecords(t *testing.T) {
	var a, b bytes.Buffer
	h := NewFanoutHandler(
		NewPlainHandler(&a, slog.LevelInfo),
		NewPlainHandler(&b, slog.LevelWarn),
	)

	logger := slog.New(h)
	logger.Info("info line")
	logger.Warn("warn line")

	assert.Contains(t, a.String(), "info line")
	assert.Contains(t, a.String(), "warn line")
	assert.NotContains(t, b.String(), "info line", "second handler filters at warn")
	assert.Contains(t, b.String(), "warn line")
}

func TestSetDefaultWithFileMirror(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "install.log")
	closer, err := SetDefaultWithFileMirror("devstack", "test", "info", path)
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	slog.Info("mirrored line", "step", "base")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] mirrored line step=base")
}

func TestSetDefaultWithFileMirrorBadPath(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	closer, err := SetDefaultWithFileMirror("devstack", "test", "info",
		filepath.Join(t.TempDir(), "missing", "nested", "install.log"))
	assert.Error(t, err)
	assert.Nil(t, closer)

	// Default logger is still usable without the mirror.
	assert.NotPanics(t, func() { slog.Info("console only") })
}

func TestPlainHandlerConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	h := NewPlainHandler(&buf, slog.LevelInfo)
	logger := slog.New(h)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				logger.Info("concurrent")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 200, lines)
}
