package differ

import (
	"github.com/erraggy/specdiff/jsonvalue"
)

// schemaPair identifies one old/new schema pairing during traversal.
type schemaPair struct {
	old, new *jsonvalue.Object
}

// schemaVisited tracks schema pairs during one comparison. It uses pointer
// identity: a $ref always resolves to the same object.
type schemaVisited struct {
	visited map[schemaPair]string // pairs on the current stack -> location
	clean   map[schemaPair]bool   // completed pairs that produced no details
}

// newSchemaVisited creates a new visited tracker for schema traversal.
func newSchemaVisited() *schemaVisited {
	return &schemaVisited{
		visited: make(map[schemaPair]string),
		clean:   make(map[schemaPair]bool),
	}
}

// enter marks a pair as visited at the given location.
// Returns true if the pair is already being compared further up the stack,
// or was compared earlier and found equal.
func (v *schemaVisited) enter(pair schemaPair, loc string) bool {
	if v.clean[pair] {
		return true
	}
	if _, exists := v.visited[pair]; exists {
		return true
	}
	v.visited[pair] = loc
	return false
}

// leave removes a pair from the stack. A pair that produced no details is
// remembered so shared references are walked once per comparison.
func (v *schemaVisited) leave(pair schemaPair, clean bool) {
	delete(v.visited, pair)
	if clean {
		v.clean[pair] = true
	}
}

// diffSchema compares two schemas at the current location, resolving references on both sides.
func (s *session) diffSchema(oldRaw, newRaw jsonvalue.Value) {
	o, _ := s.old.Deref(oldRaw)
	n, _ := s.new.Deref(newRaw)
	if s.presence(ElementSchema, o, n, false, false) || jsonvalue.Same(o, n) {
		return
	}
	// Boolean schemas and malformed nodes have no keywords to walk.
	if o.Kind() != jsonvalue.KindObject || n.Kind() != jsonvalue.KindObject {
		s.diffGeneric(o, n, ElementSchema)
		return
	}

	pair := schemaPair{old: o.Object(), new: n.Object()}
	if s.visited.enter(pair, s.loc.String()) {
		return
	}
	before := len(s.details)
	defer func() { s.visited.leave(pair, len(s.details) == before) }()

	oldReq, newReq := requiredSet(o), requiredSet(n)
	for _, key := range unionKeys(o, n) {
		ov, nv := o.Get(key), n.Get(key)
		s.loc.Push(key)
		switch key {
		case "type":
			if !s.presence(ElementSchema, ov, nv, false, false) && !sameTypes(ov, nv) {
				s.record(ChangeTypeMismatch, ElementSchema, false, ov, nv)
			}

		case "properties":
			s.diffProperties(ov, nv, oldReq, newReq)

		case "required":
			s.diffRequiredList(o, n, oldReq, newReq)

		case "items", "additionalProperties", "not", "contains", "propertyNames",
			"additionalItems", "unevaluatedItems", "unevaluatedProperties", "if", "then", "else":
			s.diffSchema(ov, nv)

		case "allOf", "anyOf", "oneOf", "prefixItems":
			s.diffSchemaList(ov, nv)

		case "patternProperties", "dependentSchemas", "$defs", "definitions":
			s.diffSchemaMap(ov, nv)

		default:
			el := ElementSchema
			if isMetadataKey(key) {
				el = ElementMetadata
			}
			s.diffGeneric(ov, nv, el)
		}
		s.loc.Pop()
	}
}

// diffProperties aligns two properties maps by name.
func (s *session) diffProperties(o, n jsonvalue.Value, oldReq, newReq map[string]bool) {
	if o.Kind() != n.Kind() || (!o.IsAbsent() && o.Kind() != jsonvalue.KindObject) {
		s.diffGeneric(o, n, ElementProperty)
		return
	}
	for _, name := range unionKeys(o, n) {
		po, pn := o.Get(name), n.Get(name)
		s.loc.Push(name)
		if !s.presence(ElementProperty, po, pn, oldReq[name], newReq[name]) {
			s.diffSchema(po, pn)
		}
		s.loc.Pop()
	}
}

// diffRequiredList compares required-name lists.
// Names belonging to a property that was itself added or removed are skipped:
// the property's own item_added or item_removed detail covers them.
func (s *session) diffRequiredList(o, n jsonvalue.Value, oldReq, newReq map[string]bool) {
	oldProps, newProps := o.Get("properties"), n.Get("properties")
	for _, name := range requiredNames(o, n) {
		switch {
		case newReq[name] && !oldReq[name]:
			if !oldProps.Has(name) && newProps.Has(name) {
				continue
			}
			s.loc.Push(name)
			s.record(ChangeRequiredAdded, ElementRequired, true, jsonvalue.Bool(false), jsonvalue.Bool(true))
			s.loc.Pop()
		case oldReq[name] && !newReq[name]:
			if oldProps.Has(name) && !newProps.Has(name) {
				continue
			}
			s.loc.Push(name)
			s.record(ChangeValueChanged, ElementRequired, false, jsonvalue.Bool(true), jsonvalue.Bool(false))
			s.loc.Pop()
		}
	}
}

// diffSchemaList compares schema arrays position by position.
func (s *session) diffSchemaList(o, n jsonvalue.Value) {
	if (!o.IsAbsent() && o.Kind() != jsonvalue.KindArray) || (!n.IsAbsent() && n.Kind() != jsonvalue.KindArray) {
		s.diffGeneric(o, n, ElementSchema)
		return
	}
	if s.presence(ElementSchema, o, n, false, false) {
		return
	}
	for i := range max(o.Len(), n.Len()) {
		s.loc.PushIndex(i)
		s.diffSchema(o.Index(i), n.Index(i))
		s.loc.Pop()
	}
}

// diffSchemaMap compares maps of named subschemas.
func (s *session) diffSchemaMap(o, n jsonvalue.Value) {
	if o.Kind() != n.Kind() || (!o.IsAbsent() && o.Kind() != jsonvalue.KindObject) {
		s.diffGeneric(o, n, ElementSchema)
		return
	}
	for _, name := range unionKeys(o, n) {
		s.loc.Push(name)
		s.diffSchema(o.Get(name), n.Get(name))
		s.loc.Pop()
	}
}

// sameTypes compares two type keywords. Type arrays are compared as sets,
// and a single type equals a one-element array naming it.
func sameTypes(o, n jsonvalue.Value) bool {
	if jsonvalue.Equal(o, n) {
		return true
	}
	oldSet, ok := typeSet(o)
	if !ok {
		return false
	}
	newSet, ok := typeSet(n)
	if !ok || len(oldSet) != len(newSet) {
		return false
	}
	for t := range oldSet {
		if !newSet[t] {
			return false
		}
	}
	return true
}

// typeSet returns the names in a type keyword, or false if it is not a
// string or an array of strings.
func typeSet(v jsonvalue.Value) (map[string]bool, bool) {
	if name, ok := v.AsString(); ok {
		return map[string]bool{name: true}, true
	}
	if v.Kind() != jsonvalue.KindArray {
		return nil, false
	}
	set := make(map[string]bool, v.Len())
	for _, item := range v.Items() {
		name, ok := item.AsString()
		if !ok {
			return nil, false
		}
		set[name] = true
	}
	return set, true
}

// requiredSet returns the names listed in a schema's required array.
func requiredSet(schema jsonvalue.Value) map[string]bool {
	items := schema.Get("required").Items()
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if name, ok := item.AsString(); ok {
			set[name] = true
		}
	}
	return set
}

// requiredNames returns the names of both required lists in declaration order, old first.
func requiredNames(oldSchema, newSchema jsonvalue.Value) []string {
	var names []string
	seen := make(map[string]bool)
	for _, schema := range []jsonvalue.Value{oldSchema, newSchema} {
		for _, item := range schema.Get("required").Items() {
			if name, ok := item.AsString(); ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
