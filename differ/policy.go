package differ

import "github.com/erraggy/specdiff/jsonvalue"

// Context names the side of an HTTP exchange a changed node belongs to.
type Context string

const (
	// ContextRequest covers parameters and request bodies: what callers send
	ContextRequest Context = "request"
	// ContextResponse covers responses: what callers receive
	ContextResponse Context = "response"
	// ContextOperation covers operation metadata outside requests and responses
	ContextOperation Context = "operation"
)

// Element names the kind of node a detail is about.
type Element string

const (
	// ElementParameter is a whole parameter
	ElementParameter Element = "parameter"
	// ElementRequestBody is a whole request body
	ElementRequestBody Element = "request_body"
	// ElementMediaType is one content-type entry under content
	ElementMediaType Element = "media_type"
	// ElementResponse is one status code entry under responses
	ElementResponse Element = "response"
	// ElementHeader is one response header
	ElementHeader Element = "header"
	// ElementProperty is one entry of a schema's properties
	ElementProperty Element = "property"
	// ElementSchema is a schema keyword such as type, format, enum, or items
	ElementSchema Element = "schema"
	// ElementRequired is a required flag or required-list membership
	ElementRequired Element = "required"
	// ElementSecurity is an operation's security requirements
	ElementSecurity Element = "security"
	// ElementMetadata is descriptive content: summaries, descriptions, examples, extensions
	ElementMetadata Element = "metadata"
)

// Classification is everything a Policy sees about one difference.
type Classification struct {
	ChangeType ChangeType
	Context    Context
	Element    Element
	// Location is the detail's dot-delimited location
	Location string
	// Keyword is the last location segment, such as "type" or "enum"
	Keyword string
	// Required is set for item_added and item_removed when the item is required
	Required bool
	Old      jsonvalue.Value
	New      jsonvalue.Value
}

// Policy decides whether a difference breaks existing clients.
// It is consulted once per detail, when the detail is recorded.
type Policy interface {
	IsBreaking(c Classification) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(c Classification) bool

// IsBreaking implements Policy.
func (f PolicyFunc) IsBreaking(c Classification) bool {
	return f(c)
}

// DefaultPolicy is the built-in breaking-change policy:
//
//   - type mismatches are breaking, except in descriptive metadata
//   - making an input required is breaking
//   - adding a required request property, parameter, or body is breaking
//   - removing a response property, status code, media type, or header is breaking
//   - removing an accepted request media type is breaking
//   - removing request enum values, or dropping a response property from required, is breaking
//
// Everything else, including all additions to responses, is not.
type DefaultPolicy struct{}

// IsBreaking implements Policy.
func (DefaultPolicy) IsBreaking(c Classification) bool {
	if c.Element == ElementMetadata {
		return false
	}

	switch c.ChangeType {
	case ChangeTypeMismatch:
		return true

	case ChangeRequiredAdded:
		return c.Context != ContextResponse

	case ChangeItemAdded:
		if c.Context != ContextRequest || !c.Required {
			return false
		}
		switch c.Element {
		case ElementProperty, ElementParameter, ElementRequestBody:
			return true
		}
		return false

	case ChangeItemRemoved:
		switch c.Context {
		case ContextResponse:
			switch c.Element {
			case ElementProperty, ElementResponse, ElementMediaType, ElementHeader:
				return true
			}
		case ContextRequest:
			return c.Element == ElementMediaType
		}
		return false

	case ChangeValueChanged:
		switch {
		case c.Context == ContextRequest && c.Keyword == "enum":
			return enumNarrowed(c.Old, c.New)
		case c.Context == ContextResponse && c.Element == ElementRequired:
			// A response field that was guaranteed no longer is.
			return c.Old.AsBool() && !c.New.AsBool()
		}
		return false
	}
	return false
}

// enumNarrowed reports whether some value allowed by old is not allowed by newer.
func enumNarrowed(old, newer jsonvalue.Value) bool {
	for _, o := range old.Items() {
		found := false
		for _, n := range newer.Items() {
			if jsonvalue.Equal(o, n) {
				found = true
				break
			}
		}
		if !found {
			return true
		}
	}
	return false
}

// StrictPolicy treats every difference outside descriptive metadata as breaking,
// except additions to responses.
type StrictPolicy struct{}

// IsBreaking implements Policy.
func (StrictPolicy) IsBreaking(c Classification) bool {
	if c.Element == ElementMetadata {
		return false
	}
	return c.ChangeType != ChangeItemAdded || c.Context != ContextResponse
}

// LenientPolicy only reports type mismatches and removed response content as breaking.
type LenientPolicy struct{}

// IsBreaking implements Policy.
func (LenientPolicy) IsBreaking(c Classification) bool {
	switch c.ChangeType {
	case ChangeTypeMismatch:
		return c.Element != ElementMetadata
	case ChangeItemRemoved:
		return c.Context == ContextResponse && (c.Element == ElementProperty || c.Element == ElementResponse)
	}
	return false
}

// PolicyByName returns a built-in policy: "default", "strict", or "lenient".
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case "", "default":
		return DefaultPolicy{}, true
	case "strict":
		return StrictPolicy{}, true
	case "lenient":
		return LenientPolicy{}, true
	}
	return nil, false
}
