// Package probe computes the SystemProfile that drives the provisioning
// recipe.
//
// The prober classifies the host distribution from /etc/os-release,
// detects NVIDIA GPU presence via the PCI device list, and enforces the
// environment preconditions: minimum OS version, free disk space, network
// reachability, non-root invocation, and a working privilege-elevation
// helper. Any failed precondition aborts the run before a single
// installation command executes.
//
// The resulting SystemProfile is immutable. It is computed exactly once and
// passed by value to the package-manager adapter and every installation
// step; no component mutates it afterwards.
//
//	profile, err := probe.New().Probe(ctx)
//	if err != nil {
//	    return err // precondition failure, nothing was installed
//	}
//	if profile.HasGPU {
//	    // NVIDIA stack steps apply
//	}
//
// GPU absence is not an error: the profile records HasGPU=false and the
// GPU-conditioned steps become no-ops. A GPU without a readable driver
// version (nvidia-smi missing) is likewise a warning only.
package probe
