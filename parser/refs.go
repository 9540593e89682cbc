package parser

import "github.com/erraggy/specdiff/jsonvalue"

// maxRefDepth bounds how many $ref hops Deref follows.
const maxRefDepth = 32

// Deref follows local $ref pointers starting at v.
//
// It returns the final target and the last reference followed ("" when v is
// not a reference). References that are external or do not resolve are left
// in place: the reference object itself is returned, along with its pointer.
func (d *Document) Deref(v jsonvalue.Value) (jsonvalue.Value, string) {
	ref := ""
	for range maxRefDepth {
		r, ok := RefOf(v)
		if !ok {
			return v, ref
		}
		target, found := jsonvalue.Resolve(d.Root, r)
		if !found {
			return v, r
		}
		v, ref = target, r
	}
	return v, ref
}

// RefOf returns the $ref string of a reference object.
func RefOf(v jsonvalue.Value) (string, bool) {
	r, ok := v.Get("$ref").AsString()
	return r, ok
}
