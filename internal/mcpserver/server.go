// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes specdiff comparisons as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/specdiff"
	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/internal/source"
	"github.com/erraggy/specdiff/parser"
)

const serverInstructions = `specdiff MCP server: compares two versions of an OpenAPI 3.x document operation by operation.

Every tool takes an "old" and a "new" document. Provide each as exactly one of file (path on disk, or git:<rev>:<path>), url, or content (inline JSON or YAML).

Tools:
- compare: per-operation changes with breaking flags. Start with breaking_only=true on large APIs, then include_details=true for the operations you care about.
- release_notes: Markdown release notes for the same comparison.
- full_diff: line-by-line text diff of the two documents.

Configuration: defaults come from the specdiff config file or SPECDIFF_MCP_* environment variables (SPECDIFF_MCP_DETAIL_LIMIT, SPECDIFF_MCP_CACHE_SIZE, SPECDIFF_MCP_CACHE_TTL, SPECDIFF_MCP_ALLOW_PRIVATE_IPS).

Caching: parsed documents are cached per session. File entries are keyed by path and mtime; content entries by hash.`

// Server is an MCP server bound to one comparison policy and document loader.
type Server struct {
	opts      Options
	loader    *source.Loader
	urlLoader *source.Loader
	cache     *expirable.LRU[string, *parser.Document]
	mcp       *mcp.Server
}

// New creates a Server with all tools registered.
func New(opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		opts:   opts,
		loader: opts.Loader,
	}
	s.urlLoader = s.loader
	if !opts.AllowPrivateIPs {
		guarded := *s.loader
		guarded.HTTPClient = newSafeHTTPClient()
		s.urlLoader = &guarded
	}
	if opts.CacheSize > 0 {
		s.cache = expirable.NewLRU[string, *parser.Document](opts.CacheSize, nil, opts.CacheTTL)
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: "specdiff", Version: specdiff.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.registerTools()
	return s
}

// Run serves over stdio and blocks until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves over t.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two versions of an OpenAPI 3.x document and report which operations were added, deleted, or updated, with a breaking flag per operation and per field-level difference. Use breaking_only=true to focus on breaking changes. Field-level details are omitted unless include_details=true; detail_limit caps them per operation.",
	}, s.handleCompare)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "release_notes",
		Description: "Generate Markdown release notes for the changes between two versions of an OpenAPI 3.x document. Sections list breaking changes, new endpoints, improvements, and deprecated endpoints. Set date (YYYY-MM-DD) for the heading; defaults to today.",
	}, s.handleReleaseNotes)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "full_diff",
		Description: "Line-by-line diff of the raw text of two documents. Lines are paired by position, not aligned. Use changed_only=true to omit unchanged lines.",
	}, s.handleFullDiff)
}

// policy returns the configured classification policy.
func (s *Server) policy() differ.Policy {
	return s.opts.Policy
}

// pathPattern matches absolute filesystem paths so they are not leaked to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 so omitempty drops the field.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
