package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder builds dot-delimited locations incrementally.
// Uses push/pop semantics so recursive walks only materialize a string when
// a location is actually reported.
type PathBuilder struct {
	segments []string
	length   int // pre-calculated length for String() allocation
}

// Push adds a segment to the path.
func (p *PathBuilder) Push(segment string) {
	if len(p.segments) > 0 {
		p.length++ // dot separator
	}
	p.segments = append(p.segments, segment)
	p.length += len(segment)
}

// PushIndex adds an array index segment, rendered as ".0", ".1", etc.
func (p *PathBuilder) PushIndex(i int) {
	p.Push(strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last)
	if len(p.segments) > 0 {
		p.length--
	}
}

// Last returns the final segment, or "" for an empty path.
func (p *PathBuilder) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Depth returns the number of segments.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the full path. Only call when the path is needed.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for i, seg := range p.segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// StringWith materializes the path with one extra trailing segment, without mutating the builder.
func (p *PathBuilder) StringWith(segment string) string {
	if len(p.segments) == 0 {
		return segment
	}
	return p.String() + "." + segment
}
