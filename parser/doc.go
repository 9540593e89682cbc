// Package parser reads OpenAPI 3.x documents into an ordered value tree.
//
// A [Document] keeps the exact source text, the decoded [jsonvalue.Value]
// tree, and an index of every operation keyed by upper-case method and exact
// path. JSON and YAML are both accepted; JSON is read as YAML, which it is a
// subset of.
//
// # Versions
//
// Only documents declaring "openapi: 3.x" are accepted. A Swagger 2.0
// document, or one with no version key, fails with an
// [oaserrors.UnsupportedVersionError].
//
// # Duplicate operations
//
// An operation declared more than once (a repeated path key, a repeated
// method key, or "get" next to "GET") keeps its last declaration. Each such
// operation is listed in [Document.Ambiguities] and logged as a warning.
//
// # References
//
// [Document.Deref] follows local "#/..." pointers. External references are
// left as opaque reference objects.
//
// # Example
//
//	p := parser.New()
//	p.Side = oaserrors.SideNew
//	doc, err := p.Parse("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range doc.Operations() {
//		fmt.Println(op.Method, op.Path)
//	}
package parser
