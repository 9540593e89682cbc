package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/specdiff/jsonvalue"
	"github.com/erraggy/specdiff/oaserrors"
)

// version represents a semantic version with major, minor, and patch components.
type version struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseVersion parses a semantic version string such as "3.0.1" or "3.1.0-rc1".
// The patch component is optional.
func parseVersion(s string) (*version, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > math.MaxInt32 {
			return nil, fmt.Errorf("invalid version component: %q", part)
		}
		nums[i] = n
	}

	return &version{major: nums[0], minor: nums[1], patch: nums[2], prerelease: prerelease}, nil
}

// IsSupportedVersion reports whether s declares an OpenAPI 3.x document.
func IsSupportedVersion(s string) bool {
	v, err := parseVersion(s)
	return err == nil && v.major == 3
}

// detectVersion reads the declared version from the document root.
// Swagger 2.0 documents and documents with no declaration are rejected.
func detectVersion(root jsonvalue.Value) (string, error) {
	openapi := root.Get("openapi")
	if openapi.IsAbsent() {
		// A swagger key still tells the caller what was found.
		swagger := root.Get("swagger")
		declared := ""
		if !swagger.IsAbsent() {
			declared = swagger.String()
		}
		return "", &oaserrors.UnsupportedVersionError{Version: declared}
	}

	// An unquoted "openapi: 3.0" decodes as a number; its text is still the version.
	declared := openapi.String()
	if !IsSupportedVersion(declared) {
		return "", &oaserrors.UnsupportedVersionError{Version: declared}
	}
	return declared, nil
}
