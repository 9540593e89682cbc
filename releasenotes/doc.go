// Package releasenotes renders a comparison report as Markdown release notes.
//
// Notes open with a summary block followed by up to four sections, each
// omitted when empty: breaking changes, new endpoints, non-breaking
// improvements, and removed endpoints.
package releasenotes
