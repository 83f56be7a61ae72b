// Package iv defines the intermediate value tree produced and consumed by converters.
// It is a small tagged union (null, bool, integer, float, string, sequence, ordered map)
// with a JSON text codec that preserves map key order.
package iv
