// Package dict implements an ordered, nestable key/value container.
//
// A Dict is an insertion-order-preserving sequence of (key, Value)
// entries with unique keys. Values are a tagged union: either a plain
// text Scalar or another Dict, nested to arbitrary depth.
//
// # Value Semantics
//
// Dicts behave like values. Every mutating operation (Set, Remove)
// returns a new logical Dict and leaves the receiver untouched; two
// callers can never observe each other's mutations through a shared
// instance. Equality is structural, never referential.
//
//	d, _ := dict.Declare("host", "localhost")
//	d2 := d.Set("port", dict.Str("8080"))
//	d.Size()  // still 1
//	d2.Size() // 2
//
// # Wire Format
//
// Encode and Decode provide a single-string interop format for
// environments without native composite types. Four bytes from the
// ASCII separator block (0x1C-0x1F) are reserved as structure; scalars
// must not contain them. Nested containers are escaped into the value
// slot and restored exactly on decode. In-memory nesting never touches
// the wire format.
//
// # Pretty Printing
//
// PrettyPrint renders a Dict using a PrintSpec of literal decorations
// around each structural position, with per-line indentation of nested
// containers.
package dict
