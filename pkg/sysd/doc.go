// Package sysd wraps systemd unit control for the provisioning steps.
//
// The container runtime step restarts docker.service after configuring the
// GPU runtime shim. Going through the systemd D-Bus API instead of shelling
// out to systemctl gives a definitive job result instead of an exit code.
package sysd
