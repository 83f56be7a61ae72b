// Package ivconv converts typed Go values to intermediate value trees (package iv) and back.
//
// A Serializer holds an ordered list of shape converters: primitives, enums, arrays, slices and
// containers, maps, nullable values, key/value pairs, identifiers, dates, weak references, type
// references and the reflected struct fallback. Each conversion returns a Result carrying its
// status and messages.
package ivconv
