// Package memory implements the chunk store in process memory with
// brute-force cosine ranking, for tests and local development.
package memory
