package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, src string) Value {
	t.Helper()
	v, err := Decode([]byte(src))
	require.NoError(t, err)
	return v
}

func TestDecodeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind Kind
		disp string
	}{
		{"null", "null", KindNull, "null"},
		{"tilde null", "~", KindNull, "null"},
		{"bool", "true", KindBool, "true"},
		{"int", "42", KindNumber, "42"},
		{"float", "1.5", KindNumber, "1.5"},
		{"string", "hello", KindString, "hello"},
		{"quoted number", `"42"`, KindString, "42"},
		{"array", "[1, 2]", KindArray, "[1,2]"},
		{"object", `{"b": 1, "a": "x"}`, KindObject, `{"b":1,"a":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustDecode(t, tt.src)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.disp, v.String())
		})
	}
}

func TestAbsent(t *testing.T) {
	var v Value
	assert.True(t, v.IsAbsent())
	assert.Equal(t, AbsentMarker, v.String())
	assert.False(t, Equal(v, Null()))
	assert.True(t, Equal(v, Absent()))

	obj := mustDecode(t, `{"a": 1}`)
	assert.True(t, obj.Get("missing").IsAbsent())
	assert.True(t, String("x").Get("a").IsAbsent())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"int and float", "1", "1.0", true},
		{"different numbers", "1", "2", false},
		{"number and string", "1", `"1"`, false},
		{"object order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"object extra key", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"array order matters", "[1,2]", "[2,1]", false},
		{"nested", `{"a":[{"x":true}]}`, `{"a":[{"x":true}]}`, true},
		{"yaml vs json", "a: 1\nb: [x]\n", `{"a":1,"b":["x"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(mustDecode(t, tt.a), mustDecode(t, tt.b)))
		})
	}
}

func TestDuplicateKeys(t *testing.T) {
	v := mustDecode(t, "a: 1\nb: 2\na: 3\n")
	obj := v.Object()
	require.NotNil(t, obj)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	assert.Equal(t, 2, obj.Occurrences("a"))
	assert.Len(t, obj.All("a"), 2)
	n, ok := obj.Get("a").AsNumber()
	require.True(t, ok)
	assert.InDelta(t, 3.0, n, 0)
}

func TestAliasesAndMerge(t *testing.T) {
	v := mustDecode(t, `
base: &base
  type: string
  format: uuid
derived:
  <<: *base
  format: email
copy: *base
`)
	assert.Equal(t, "string", v.Get("derived").Get("type").Text())
	assert.Equal(t, "email", v.Get("derived").Get("format").Text())
	assert.True(t, Same(v.Get("base"), v.Get("copy")))
}

func TestSame(t *testing.T) {
	a := mustDecode(t, `{"x": 1}`)
	b := mustDecode(t, `{"x": 1}`)
	assert.True(t, Same(a, a))
	assert.False(t, Same(a, b))
	assert.True(t, Equal(a, b))
	assert.False(t, Same(String("x"), String("x")))
}

func TestMarshalJSONPreservesOrder(t *testing.T) {
	v := mustDecode(t, "z: 1\na: <b>&\nm: [true, null]\n")
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":1,"a":"<b>&","m":[true,null]}`, string(data))
	assert.Equal(t, `{"z":1,"a":"<b>&","m":[true,null]}`, string(data))
}

func TestResolve(t *testing.T) {
	root := mustDecode(t, `
components:
  schemas:
    Pet:
      type: object
paths:
  /pets/{id}:
    get: {}
  a~b: {}
list: [zero, one]
`)

	tests := []struct {
		name    string
		pointer string
		ok      bool
	}{
		{"schema", "#/components/schemas/Pet", true},
		{"escaped slash", "#/paths/~1pets~1{id}/get", true},
		{"escaped tilde", "#/paths/a~0b", true},
		{"percent encoded", "#/paths/~1pets~1%7Bid%7D", true},
		{"array index", "#/list/1", true},
		{"root", "#", true},
		{"missing", "#/components/schemas/Dog", false},
		{"bad index", "#/list/5", false},
		{"external", "other.yaml#/Pet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Resolve(root, tt.pointer)
			assert.Equal(t, tt.ok, ok)
		})
	}

	got, _ := Resolve(root, "#/list/1")
	assert.Equal(t, "one", got.Text())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "integer", mustDecode(t, "3").TypeName())
	assert.Equal(t, "number", mustDecode(t, "3.5").TypeName())
	assert.Equal(t, "string", String("3").TypeName())
	assert.Equal(t, "absent", Absent().TypeName())
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{"b": []any{1, "x", nil}, "a": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Object().Keys())
	assert.Equal(t, `{"a":true,"b":[1,"x",null]}`, v.String())

	_, err = FromAny(struct{}{})
	assert.Error(t, err)
}

func TestToNodeRoundTrip(t *testing.T) {
	src := mustDecode(t, `{"name":"x","count":3,"ratio":0.5,"tags":["a"],"none":null,"ok":false}`)
	back, err := FromNode(ToNode(src))
	require.NoError(t, err)
	assert.True(t, Equal(src, back))
	assert.Equal(t, src.Object().Keys(), back.Object().Keys())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("? [a, b]\n: value\n"))
	require.Error(t, err)
	var ne *NodeError
	assert.ErrorAs(t, err, &ne)
}
