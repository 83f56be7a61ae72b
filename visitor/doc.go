// Package visitor offers reflection-backed visitors over maps, arrays, slices and
// iterator sequences, with deterministic map key ordering, plus a small concurrent cache.
package visitor
