// Package watcher observes a scan record source and emits each newly-arrived
// identity record exactly once.
//
// Two triggers feed one debounced change check: push notifications from the
// source (when it supports them) and an unconditional poll ticker, because
// file change notifications are unreliable on some platforms. Both paths
// serialize through a single critical section that reads the modification
// signal, extracts the latest record, compares its identity key against the
// last emission, and emits at most one event, so racing triggers can never
// double-fire for the same scan.
package watcher
