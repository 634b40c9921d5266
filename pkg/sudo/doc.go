// Package sudo maintains the elevated-privilege credential for the
// duration of a provisioning run.
//
// Package installs and source builds can hold a single step busy for longer
// than the sudo credential cache lives. KeepAlive refreshes the credential
// every minute as an explicit background task bound to the orchestrator's
// context, so it stops deterministically when the run ends.
package sudo
