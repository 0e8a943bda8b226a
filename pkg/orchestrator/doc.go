// Package orchestrator wires page configuration → list editors → renderer and
// handles the submit round trip (decode, add/remove actions, serialize,
// validate) behind a single entry point.
package orchestrator
