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

package osfile

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser parses line-oriented key=value system files such as /etc/os-release.
type Parser struct {
	maxSize      int
	kvDelimiter  string
	vTrimChars   string
	skipComments bool
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB; system identification files are tiny and anything larger
// is almost certainly the wrong file.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithKVDelimiter sets the key-value delimiter. Default is "=".
func WithKVDelimiter(delim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = delim
	}
}

// WithVTrimChars sets characters trimmed from values, typically quote
// characters. Default is no trimming.
func WithVTrimChars(chars string) Option {
	return func(p *Parser) {
		p.vTrimChars = chars
	}
}

// WithSkipComments sets whether lines starting with '#' are skipped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// NewParser creates a parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      1 << 20,
		kvDelimiter:  "=",
		skipComments: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap reads the file at path and parses its content into a map. Lines
// without the key-value delimiter are skipped as malformed; per the
// freedesktop.org os-release spec such lines carry no information.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, p.kvDelimiter, 2)
		if len(kv) != 2 {
			slog.Debug("skipping line without delimiter", "line", line)
			continue
		}

		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		if key == "" || value == "" {
			continue
		}
		result[key] = value
	}

	return result, nil
}

// GetLines reads the file at path and returns its non-empty, non-comment
// lines. An error is returned if the file cannot be read, exceeds the
// maximum size, or contains invalid UTF-8.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result, nil
}
