package jsonvalue

// Object is an ordered set of members. Keys keep their first-seen position.
// A key declared more than once keeps every occurrence, and lookups see the last one.
type Object struct {
	keys []string
	vals map[string][]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string][]Value)}
}

// Set appends an occurrence of key. If key already exists its position is kept
// and the new value shadows the earlier ones.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = append(o.vals[key], v)
	return o
}

// Len returns the number of distinct keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the distinct keys in declaration order.
// The returned slice must not be modified.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.vals[key]
	return ok
}

// Get returns the last value declared for key, or the absent value.
func (o *Object) Get(key string) Value {
	if o == nil {
		return Value{}
	}
	vs := o.vals[key]
	if len(vs) == 0 {
		return Value{}
	}
	return vs[len(vs)-1]
}

// All returns every value declared for key in declaration order.
func (o *Object) All(key string) []Value {
	if o == nil {
		return nil
	}
	return o.vals[key]
}

// Occurrences returns how many times key was declared.
func (o *Object) Occurrences(key string) int {
	if o == nil {
		return 0
	}
	return len(o.vals[key])
}
