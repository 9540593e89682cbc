package jsonvalue

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// numberText returns the number as written in the source, or a canonical form.
func (v Value) numberText() string {
	if v.lit != "" {
		return v.lit
	}
	switch {
	case math.IsNaN(v.num):
		return ".nan"
	case math.IsInf(v.num, 1):
		return ".inf"
	case math.IsInf(v.num, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// jsonNumber returns a valid JSON number literal for v, or "null" for NaN and infinities.
func (v Value) jsonNumber() string {
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return "null"
	}
	if v.lit != "" && json.Valid([]byte(v.lit)) {
		return v.lit
	}
	if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<53 {
		return strconv.FormatInt(int64(v.num), 10)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// String returns the display form of v.
//
// Strings render as their raw contents, scalars as JSON literals, arrays and
// objects as compact JSON, and the absent value as AbsentMarker.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return AbsentMarker
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.numberText()
	case KindString:
		return v.lit
	default:
		var buf bytes.Buffer
		v.writeJSON(&buf)
		return buf.String()
	}
}

// MarshalJSON implements json.Marshaler. Object members keep declaration order.
// The absent value marshals as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindAbsent, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(v.jsonNumber())
	case KindString:
		writeJSONString(buf, v.lit)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			v.obj.Get(k).writeJSON(buf)
		}
		buf.WriteByte('}')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}

// TypeName returns the JSON Schema type name of v, distinguishing integers from other numbers.
func (v Value) TypeName() string {
	if v.kind == KindNumber && v.num == math.Trunc(v.num) && !strings.ContainsAny(v.lit, ".eE") {
		return "integer"
	}
	return v.kind.String()
}
