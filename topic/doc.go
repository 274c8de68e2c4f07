// Package topic detects mentions of known real-estate projects in
// conversation text via keyword substring matching, mapping each matched
// phrase to its canonical project identifier.
package topic
