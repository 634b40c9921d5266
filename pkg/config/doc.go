// Package config loads the optional devstack configuration file.
//
// The file is YAML, discovered at $HOME/.devstack.yaml or supplied
// explicitly via --config. It overrides paths and probe targets only;
// component versions are compile-time pins in pkg/pins and cannot be
// changed at runtime.
//
//	installDir: ~/ai-dev
//	logFile: /var/tmp/devstack.log
//	metricsAddr: localhost:9464
package config
