package jsonvalue

import (
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindAbsent is the zero Kind: no node exists.
	KindAbsent Kind = iota
	// KindNull is an explicit JSON null.
	KindNull
	// KindBool is true or false.
	KindBool
	// KindNumber is any JSON number. Integers and floats compare by numeric value.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered list of values.
	KindArray
	// KindObject is an ordered set of key/value members.
	KindObject
)

// String returns the JSON Schema style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "absent"
	}
}

// AbsentMarker is the display form of an absent value.
const AbsentMarker = "N/A"

// Value is a single JSON value. The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	num  float64
	lit  string // number literal as written, or string contents
	arr  *[]Value
	obj  *Object
}

// Absent returns the absent value. It is equivalent to Value{}.
func Absent() Value { return Value{} }

// Null returns an explicit JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value holding an integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), lit: strconv.FormatInt(i, 10)}
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, lit: s} }

// Array returns an array value holding items in order.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: &cp}
}

// ObjectValue wraps o as a Value. A nil o yields an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func numberWithLiteral(f float64, lit string) Value {
	return Value{kind: KindNumber, num: f, lit: lit}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v, and false for every other kind.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsNumber returns the number held by v and whether v is a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string held by v and whether v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.lit, true
}

// Text returns the string held by v, or "" when v is not a string.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.lit
}

// Items returns the elements of an array value, or nil for every other kind.
// The returned slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray || v.arr == nil {
		return nil
	}
	return *v.arr
}

// Len returns the number of array elements or object members, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.Items())
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Object returns the object held by v, or nil when v is not an object.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get returns the member named key of an object value.
// It returns the absent value when v is not an object or has no such member.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.obj.Get(key)
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	return v.kind == KindObject && v.obj.Has(key)
}

// Index returns element i of an array value, or the absent value when out of range.
func (v Value) Index(i int) Value {
	items := v.Items()
	if i < 0 || i >= len(items) {
		return Value{}
	}
	return items[i]
}

// Equal reports whether a and b hold the same JSON value.
//
// Numbers compare by numeric value, so 1 and 1.0 are equal. Object member
// order is ignored; array element order is significant. Two absent values are
// equal, but absent never equals null.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		if math.IsNaN(a.num) && math.IsNaN(b.num) {
			return true
		}
		return a.num == b.num
	case KindString:
		return a.lit == b.lit
	case KindArray:
		ai, bi := a.Items(), b.Items()
		if len(ai) != len(bi) {
			return false
		}
		for i := range ai {
			if !Equal(ai[i], bi[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj == b.obj {
			return true
		}
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.Keys() {
			if !b.obj.Has(k) || !Equal(a.obj.Get(k), b.obj.Get(k)) {
				return false
			}
		}
		return true
	}
	return false
}

// Same reports whether a and b are the same object or array node, not merely equal ones.
func Same(a, b Value) bool {
	switch {
	case a.kind == KindObject && b.kind == KindObject:
		return a.obj == b.obj
	case a.kind == KindArray && b.kind == KindArray:
		return a.arr != nil && a.arr == b.arr
	}
	return false
}
