package jsonvalue

import (
	"net/url"
	"strconv"
	"strings"
)

// Resolve looks up a local JSON pointer such as "#/components/schemas/Pet" under root.
// It returns false when the pointer is not local or does not lead to a node.
func Resolve(root Value, pointer string) (Value, bool) {
	if !strings.HasPrefix(pointer, "#") {
		return Value{}, false
	}
	frag := pointer[1:]
	if strings.Contains(frag, "%") {
		if unescaped, err := url.PathUnescape(frag); err == nil {
			frag = unescaped
		}
	}
	if frag == "" {
		return root, !root.IsAbsent()
	}
	if !strings.HasPrefix(frag, "/") {
		return Value{}, false
	}

	cur := root
	for _, tok := range strings.Split(frag[1:], "/") {
		tok = UnescapeToken(tok)
		switch cur.Kind() {
		case KindObject:
			if !cur.Has(tok) {
				return Value{}, false
			}
			cur = cur.Get(tok)
		case KindArray:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= cur.Len() {
				return Value{}, false
			}
			cur = cur.Index(i)
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// UnescapeToken decodes a JSON pointer reference token ("~1" is "/", "~0" is "~").
func UnescapeToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
}
