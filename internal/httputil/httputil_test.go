package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"200", true},
		{"100", true},
		{"599", true},
		{"default", true},
		{"x-internal", true},
		{"2XX", true},
		{"4xx", true},
		{"6XX", false},
		{"0XX", false},
		{"099", false},
		{"600", false},
		{"20", false},
		{"2000", false},
		{"+20", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStatusCode(tt.code))
		})
	}
}

func TestValidMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		want      bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/*", true},
		{"*/*", true},
		{"*/json", false},
		{"/*", false},
		{"json", false},
		{"", false},
		{"application/", false},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMediaType(tt.mediaType))
		})
	}
}
