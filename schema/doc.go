// Package schema describes runtime types for converters: serializable members with
// their JSON visible names and accessors, presence markers, registered enums and
// registered type names.
package schema
