package parser

import (
	"fmt"
	"strings"

	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/oaserrors"
)

// HTTPMethods lists the operation keys of a path item, in report order.
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD", "TRACE"}

var methodRank = func() map[string]int {
	m := make(map[string]int, len(HTTPMethods))
	for i, method := range HTTPMethods {
		m[method] = i
	}
	return m
}()

// MethodRank returns the position of method in HTTPMethods, or len(HTTPMethods) if unknown.
func MethodRank(method string) int {
	if r, ok := methodRank[strings.ToUpper(method)]; ok {
		return r
	}
	return len(HTTPMethods)
}

// OperationKey identifies an operation within a document.
type OperationKey struct {
	// Method is the upper-case HTTP method
	Method string
	// Path is the URL template, matched exactly
	Path string
}

// String returns the "METHOD:path" form used as a change identifier.
func (k OperationKey) String() string {
	return k.Method + ":" + k.Path
}

// Operation is one method and path pair of a document.
type Operation struct {
	OperationKey
	// Node is the operation object
	Node jsonvalue.Value
	// PathItem is the path item the operation was declared in
	PathItem jsonvalue.Value
}

// Operations returns every operation in declaration order.
// For operations declared more than once only the last declaration is present.
func (d *Document) Operations() []Operation {
	return d.ops
}

// Operation looks up an operation by method and exact path.
func (d *Document) Operation(method, path string) (Operation, bool) {
	i, ok := d.opIndex[OperationKey{Method: strings.ToUpper(method), Path: path}]
	if !ok {
		return Operation{}, false
	}
	return d.ops[i], true
}

// indexOperations walks paths and records each operation.
//
// A (method, path) pair may appear several times: as a repeated path key, a
// repeated method key, or method keys that differ only in case. Every
// occurrence is visited in declaration order, so the last one wins.
func (d *Document) indexOperations(log Logger) {
	d.opIndex = make(map[OperationKey]int)
	counts := make(map[OperationKey]int)

	paths := d.Root.Get("paths").Object()
	for _, path := range paths.Keys() {
		for _, item := range paths.All(path) {
			item, _ = d.Deref(item)
			itemObj := item.Object()
			for _, key := range itemObj.Keys() {
				method := strings.ToUpper(key)
				if _, ok := methodRank[method]; !ok {
					continue
				}
				for _, node := range itemObj.All(key) {
					k := OperationKey{Method: method, Path: path}
					counts[k]++
					op := Operation{OperationKey: k, Node: node, PathItem: item}
					if i, seen := d.opIndex[k]; seen {
						d.ops[i] = op
						continue
					}
					d.opIndex[k] = len(d.ops)
					d.ops = append(d.ops, op)
				}
			}
		}
	}

	for _, op := range d.ops {
		n := counts[op.OperationKey]
		if n < 2 {
			continue
		}
		amb := &oaserrors.AlignmentAmbiguityError{Side: d.Side, Method: op.Method, Path: op.Path, Count: n}
		d.Ambiguities = append(d.Ambiguities, amb)
		d.Warnings = append(d.Warnings, amb.Error())
		log.Warn("duplicate operation", "method", op.Method, "path", op.Path, "count", n)
	}

	if paths == nil && d.Root.Has("paths") {
		d.Warnings = append(d.Warnings, fmt.Sprintf("paths is a %s, not an object; no operations indexed", d.Root.Get("paths").Kind()))
	}
}
