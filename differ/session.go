package differ

import (
	"strings"

	"github.com/erraggy/specdiff/internal/pathutil"
	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/parser"
)

// session carries the state of one comparison.
type session struct {
	old, new *parser.Document
	policy   Policy
	loc      *pathutil.PathBuilder
	ctx      Context
	details  []Detail
	visited  *schemaVisited
}

func newSession(oldDoc, newDoc *parser.Document, policy Policy) *session {
	return &session{
		old:     oldDoc,
		new:     newDoc,
		policy:  policy,
		loc:     pathutil.Get(),
		visited: newSchemaVisited(),
	}
}

func (s *session) release() {
	pathutil.Put(s.loc)
	s.loc = nil
}

// record appends a detail at the current location, classified by the session policy.
func (s *session) record(ct ChangeType, el Element, required bool, oldVal, newVal jsonvalue.Value) {
	loc := s.loc.String()
	c := Classification{
		ChangeType: ct,
		Context:    s.ctx,
		Element:    el,
		Location:   loc,
		Keyword:    s.loc.Last(),
		Required:   required,
		Old:        oldVal,
		New:        newVal,
	}
	s.details = append(s.details, Detail{
		Location:   loc,
		ChangeType: ct,
		OldValue:   oldVal,
		NewValue:   newVal,
		IsBreaking: s.policy.IsBreaking(c),
		Context:    s.ctx,
		Element:    el,
	})
}

// presence records an addition or removal when exactly one side is absent.
// It reports whether a detail was recorded or nothing is left to compare.
func (s *session) presence(el Element, oldVal, newVal jsonvalue.Value, oldRequired, newRequired bool) bool {
	switch {
	case oldVal.IsAbsent() && newVal.IsAbsent():
		return true
	case oldVal.IsAbsent():
		s.record(ChangeItemAdded, el, newRequired, oldVal, newVal)
		return true
	case newVal.IsAbsent():
		s.record(ChangeItemRemoved, el, oldRequired, oldVal, newVal)
		return true
	}
	return false
}

// diffGeneric compares two raw nodes structurally.
// Objects recurse key by key; arrays and scalars are compared whole.
func (s *session) diffGeneric(oldVal, newVal jsonvalue.Value, el Element) {
	if s.presence(el, oldVal, newVal, false, false) {
		return
	}
	switch {
	case jsonvalue.Same(oldVal, newVal):
	case oldVal.Kind() != newVal.Kind():
		s.record(ChangeTypeMismatch, el, false, oldVal, newVal)
	case oldVal.Kind() == jsonvalue.KindObject:
		for _, key := range unionKeys(oldVal, newVal) {
			s.loc.Push(key)
			s.diffGeneric(oldVal.Get(key), newVal.Get(key), el)
			s.loc.Pop()
		}
	case !jsonvalue.Equal(oldVal, newVal):
		s.record(ChangeValueChanged, el, false, oldVal, newVal)
	}
}

// diffRemaining compares the keys of two objects not in skip, as metadata
// when isMetadataKey says so and as el otherwise.
func (s *session) diffRemaining(oldVal, newVal jsonvalue.Value, el Element, skip ...string) {
	for _, key := range unionKeys(oldVal, newVal) {
		if containsKey(skip, key) {
			continue
		}
		kel := el
		if isMetadataKey(key) {
			kel = ElementMetadata
		}
		s.loc.Push(key)
		s.diffGeneric(oldVal.Get(key), newVal.Get(key), kel)
		s.loc.Pop()
	}
}

// unionKeys returns the keys of a in order, followed by keys only in b.
func unionKeys(a, b jsonvalue.Value) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, v := range []jsonvalue.Value{a, b} {
		obj := v.Object()
		if obj == nil {
			continue
		}
		for _, k := range obj.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

var metadataKeys = map[string]struct{}{
	"summary":      {},
	"description":  {},
	"title":        {},
	"example":      {},
	"examples":     {},
	"externalDocs": {},
	"deprecated":   {},
	"xml":          {},
	"$comment":     {},
	"links":        {},
	"tags":         {},
	"operationId":  {},
	"encoding":     {},
}

// isMetadataKey reports whether key holds descriptive content that never affects clients.
func isMetadataKey(key string) bool {
	if strings.HasPrefix(key, "x-") {
		return true
	}
	_, ok := metadataKeys[key]
	return ok
}
