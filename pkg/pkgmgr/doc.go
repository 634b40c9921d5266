// Package pkgmgr maps a detected distro family to its package-manager
// command templates.
//
// The mapping is a fixed two-entry table: apt-get for Ubuntu, dnf for
// RHEL-compatible systems. The prober validates the platform before this
// package is consulted, so an unmapped family here is an internal logic
// error rather than a user-facing condition.
package pkgmgr
