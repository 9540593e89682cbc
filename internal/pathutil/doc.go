// Package pathutil builds the dot-delimited locations reported for differences.
//
// [PathBuilder] uses push/pop semantics to build paths incrementally without
// allocating intermediate strings:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("responses")
//	path.Push("200")
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// Array indices are plain segments, so [PathBuilder.PushIndex] after
// Push("allOf") produces "allOf.0".
package pathutil
