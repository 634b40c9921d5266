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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/dev-stack/pkg/defaults"
	"github.com/NVIDIA/dev-stack/pkg/errors"
)

// defaultFileName is the auto-discovered config location under $HOME.
const defaultFileName = ".devstack.yaml"

// Config holds the tunable, non-version settings of a provisioning run.
// Component version pins are deliberately not configurable; they live in
// pkg/pins as compile-time constants.
type Config struct {
	// InstallDir is the persistent installation directory.
	InstallDir string `yaml:"installDir"`
	// VenvDir is the Python virtual environment directory.
	VenvDir string `yaml:"venvDir"`
	// LogFile is the installation log path.
	LogFile string `yaml:"logFile"`
	// PingHost is the network reachability probe target.
	PingHost string `yaml:"pingHost"`
	// MetricsAddr, when set, exposes Prometheus metrics while the run is
	// in flight (e.g. "localhost:9090").
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns the built-in configuration for the given home directory.
func Default(home string) Config {
	installDir := filepath.Join(home, defaults.InstallDirName)
	return Config{
		InstallDir: installDir,
		VenvDir:    filepath.Join(installDir, defaults.VenvDirName),
		LogFile:    defaults.LogFilePath,
		PingHost:   defaults.PingHost,
	}
}

// Load resolves the effective configuration. When path is empty the default
// location ($HOME/.devstack.yaml) is consulted and its absence is not an
// error; an explicit path must exist. Unset fields keep their defaults and
// "~" prefixes are expanded.
func Load(path string) (Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}

	cfg := Default(home)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, defaultFileName)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("cannot read config file %s", path), err)
	}

	var overrides Config
	if err := yaml.Unmarshal(b, &overrides); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("malformed config file %s", path), err)
	}

	cfg.apply(overrides)
	if err := cfg.expand(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// apply overlays non-empty override fields.
func (c *Config) apply(o Config) {
	if o.InstallDir != "" {
		c.InstallDir = o.InstallDir
	}
	if o.VenvDir != "" {
		c.VenvDir = o.VenvDir
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.PingHost != "" {
		c.PingHost = o.PingHost
	}
	if o.MetricsAddr != "" {
		c.MetricsAddr = o.MetricsAddr
	}
}

// expand resolves "~" prefixes in path fields.
func (c *Config) expand() error {
	for _, p := range []*string{&c.InstallDir, &c.VenvDir, &c.LogFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("cannot expand path %s", *p), err)
		}
		*p = expanded
	}
	return nil
}
