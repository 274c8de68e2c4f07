// Package mock provides deterministic test doubles for the ai interfaces.
//
// The default embedder behavior derives a stable unit vector from the text
// hash, so identical texts always embed identically without a network call.
// All doubles accept injected function fields for failure and edge-case
// testing.
package mock
