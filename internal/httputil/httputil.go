// Package httputil checks the HTTP vocabulary used as keys in OpenAPI documents.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// ValidStatusCode reports whether code may key a responses object.
// Accepted forms are "default", extensions, range patterns 1XX to 5XX,
// and numeric codes from 100 to 599.
func ValidStatusCode(code string) bool {
	switch {
	case code == "default", strings.HasPrefix(code, "x-"):
		return true
	case len(code) != 3:
		return false
	case strings.EqualFold(code[1:], "XX"):
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= minStatusCode && n <= maxStatusCode
}

// ValidMediaType reports whether mediaType may key a content map.
// Wildcards are allowed for the whole type or the subtype only.
func ValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}
	if typ, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return typ != "" && typ != "*" && !strings.Contains(typ, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil && strings.Contains(mediaType, "/")
}
