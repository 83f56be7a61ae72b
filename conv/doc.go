// Package conv provides loose conversions of intermediate scalar values into typed
// destinations: text into numbers and booleans, text or unix epochs into time.
// Converters fall back to it after a strict conversion failed.
package conv
