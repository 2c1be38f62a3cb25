// Package koda implements KODA, a data-interchange format with a
// relaxed, human-authored textual syntax and a canonical, dictionary-
// keyed binary encoding.
//
// # Value Model
//
// Every KODA value is one of seven variants: Null, Bool, Int (signed
// 64-bit), Float (binary64), String, Array, Object. See Value.
//
// # Text Syntax
//
// KODA-T is a relaxed superset of JSON: unquoted identifier keys,
// single- or double-quoted strings, line and nested block comments,
// trailing-comma tolerance, and a document-level implicit-root object
// form (a brace-less sequence of "key value" pairs).
//
//	name: "ada" age: 36
//	{ a: 1, /* note */ b: [1, 2, 3,], }
//
// Parse and Stringify bridge text to and from Value.
//
// # Binary Encoding
//
// KODA-B is a length-prefixed, big-endian, tagged byte stream keyed by
// a canonically ordered string dictionary: every object key appearing
// anywhere in the value is collected, sorted ascending by raw bytes,
// and referenced by index from the object bodies that use it. Two
// values that differ only in object key insertion order encode to
// identical bytes.
//
// Encode and Decode bridge Value to and from the wire format.
package koda
