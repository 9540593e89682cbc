// Package jsonvalue provides a tagged-variant representation of JSON documents.
//
// A [Value] is exactly one of absent, null, boolean, number, string, array, or
// object, and [Value.Kind] reports which. Code that walks a document switches
// on the kind instead of probing dynamic maps with type assertions.
//
// Objects keep their keys in declaration order and remember every occurrence
// of a duplicated key. [Object.Get] returns the last occurrence, and
// [Object.Occurrences] lets callers detect duplicates that a plain map would
// silently collapse.
//
// The absent kind is the zero Value. It stands for "no corresponding node", so
// it is distinct from an explicit JSON null. It renders as [AbsentMarker].
//
// Values are immutable once built. Copies of an object or array Value share
// the same underlying storage, so [Same] can recognise two references to one
// node without comparing their contents.
package jsonvalue
