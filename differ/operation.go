package differ

import (
	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/parser"
)

// diffOperation compares two aligned operations and returns their details in discovery order.
func (s *session) diffOperation(oldOp, newOp parser.Operation) []Detail {
	s.details = make([]Detail, 0)
	s.loc.Reset()
	if jsonvalue.Same(oldOp.Node, newOp.Node) && jsonvalue.Same(oldOp.PathItem, newOp.PathItem) {
		return s.details
	}

	s.ctx = ContextRequest
	s.diffParameters(oldOp, newOp)
	s.diffRequestBody(oldOp.Node.Get("requestBody"), newOp.Node.Get("requestBody"))

	s.ctx = ContextResponse
	s.diffResponses(oldOp.Node.Get("responses"), newOp.Node.Get("responses"))

	s.ctx = ContextOperation
	for _, key := range unionKeys(oldOp.Node, newOp.Node) {
		el := ElementMetadata
		switch key {
		case "parameters", "requestBody", "responses":
			continue
		case "security":
			el = ElementSecurity
		}
		s.loc.Push(key)
		s.diffGeneric(oldOp.Node.Get(key), newOp.Node.Get(key), el)
		s.loc.Pop()
	}
	return s.details
}

type paramKey struct {
	name string
	in   string
}

// operationParams merges path-level and operation-level parameters.
// Operation-level entries override path-level ones with the same name and location.
func operationParams(doc *parser.Document, op parser.Operation) ([]paramKey, map[paramKey]jsonvalue.Value) {
	var keys []paramKey
	params := make(map[paramKey]jsonvalue.Value)
	add := func(list jsonvalue.Value) {
		for _, raw := range list.Items() {
			p, ref := doc.Deref(raw)
			k := paramKey{name: p.Get("name").Text(), in: p.Get("in").Text()}
			if k.name == "" && ref != "" {
				k.name = ref
			}
			if _, ok := params[k]; !ok {
				keys = append(keys, k)
			}
			params[k] = p
		}
	}
	add(op.PathItem.Get("parameters"))
	add(op.Node.Get("parameters"))
	return keys, params
}

func paramRequired(p jsonvalue.Value) bool {
	return p.Get("required").AsBool() || p.Get("in").Text() == "path"
}

func (s *session) diffParameters(oldOp, newOp parser.Operation) {
	oldKeys, oldParams := operationParams(s.old, oldOp)
	newKeys, newParams := operationParams(s.new, newOp)

	keys := oldKeys
	for _, k := range newKeys {
		if _, ok := oldParams[k]; !ok {
			keys = append(keys, k)
		}
	}

	s.loc.Push("parameters")
	defer s.loc.Pop()
	for _, k := range keys {
		o, n := oldParams[k], newParams[k]
		s.loc.Push(k.name)
		if !s.presence(ElementParameter, o, n, paramRequired(o), paramRequired(n)) {
			s.diffParameter(o, n)
		}
		s.loc.Pop()
	}
}

func (s *session) diffParameter(o, n jsonvalue.Value) {
	if jsonvalue.Same(o, n) {
		return
	}
	s.diffRequiredFlag(paramRequired(o), paramRequired(n))

	s.loc.Push("schema")
	s.diffSchema(o.Get("schema"), n.Get("schema"))
	s.loc.Pop()

	s.loc.Push("content")
	s.diffContent(o.Get("content"), n.Get("content"))
	s.loc.Pop()

	s.diffRemaining(o, n, ElementParameter, "name", "in", "required", "schema", "content")
}

// diffRequiredFlag records a change of a boolean required flag at "<current>.required".
func (s *session) diffRequiredFlag(oldReq, newReq bool) {
	if oldReq == newReq {
		return
	}
	s.loc.Push("required")
	if newReq {
		s.record(ChangeRequiredAdded, ElementRequired, true, jsonvalue.Bool(oldReq), jsonvalue.Bool(newReq))
	} else {
		s.record(ChangeValueChanged, ElementRequired, false, jsonvalue.Bool(oldReq), jsonvalue.Bool(newReq))
	}
	s.loc.Pop()
}

func (s *session) diffRequestBody(oldRaw, newRaw jsonvalue.Value) {
	o, _ := s.old.Deref(oldRaw)
	n, _ := s.new.Deref(newRaw)

	s.loc.Push("requestBody")
	defer s.loc.Pop()
	oldReq, newReq := o.Get("required").AsBool(), n.Get("required").AsBool()
	if s.presence(ElementRequestBody, o, n, oldReq, newReq) || jsonvalue.Same(o, n) {
		return
	}

	s.diffRequiredFlag(oldReq, newReq)

	s.loc.Push("content")
	s.diffContent(o.Get("content"), n.Get("content"))
	s.loc.Pop()

	s.diffRemaining(o, n, ElementRequestBody, "required", "content")
}

// diffContent compares two content maps keyed by media type.
func (s *session) diffContent(o, n jsonvalue.Value) {
	if jsonvalue.Same(o, n) {
		return
	}
	if o.Kind() != n.Kind() || (!o.IsAbsent() && o.Kind() != jsonvalue.KindObject) {
		s.diffGeneric(o, n, ElementMediaType)
		return
	}
	for _, mt := range unionKeys(o, n) {
		om, nm := o.Get(mt), n.Get(mt)
		s.loc.Push(mt)
		if !s.presence(ElementMediaType, om, nm, false, false) && !jsonvalue.Same(om, nm) {
			s.loc.Push("schema")
			s.diffSchema(om.Get("schema"), nm.Get("schema"))
			s.loc.Pop()
			s.diffRemaining(om, nm, ElementMediaType, "schema")
		}
		s.loc.Pop()
	}
}

func (s *session) diffResponses(o, n jsonvalue.Value) {
	s.loc.Push("responses")
	defer s.loc.Pop()
	if jsonvalue.Same(o, n) {
		return
	}
	for _, code := range unionKeys(o, n) {
		ro, _ := s.old.Deref(o.Get(code))
		rn, _ := s.new.Deref(n.Get(code))
		s.loc.Push(code)
		if !s.presence(ElementResponse, ro, rn, false, false) && !jsonvalue.Same(ro, rn) {
			s.loc.Push("headers")
			s.diffHeaders(ro.Get("headers"), rn.Get("headers"))
			s.loc.Pop()

			s.loc.Push("content")
			s.diffContent(ro.Get("content"), rn.Get("content"))
			s.loc.Pop()

			s.diffRemaining(ro, rn, ElementResponse, "headers", "content")
		}
		s.loc.Pop()
	}
}

func (s *session) diffHeaders(o, n jsonvalue.Value) {
	if jsonvalue.Same(o, n) {
		return
	}
	for _, name := range unionKeys(o, n) {
		ho, _ := s.old.Deref(o.Get(name))
		hn, _ := s.new.Deref(n.Get(name))
		s.loc.Push(name)
		oldReq, newReq := ho.Get("required").AsBool(), hn.Get("required").AsBool()
		if !s.presence(ElementHeader, ho, hn, oldReq, newReq) && !jsonvalue.Same(ho, hn) {
			s.diffRequiredFlag(oldReq, newReq)

			s.loc.Push("schema")
			s.diffSchema(ho.Get("schema"), hn.Get("schema"))
			s.loc.Pop()

			s.loc.Push("content")
			s.diffContent(ho.Get("content"), hn.Get("content"))
			s.loc.Pop()

			s.diffRemaining(ho, hn, ElementHeader, "required", "schema", "content")
		}
		s.loc.Pop()
	}
}
