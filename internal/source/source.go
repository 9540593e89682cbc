// Package source resolves the document references accepted by the specdiff
// commands: local files, "-" for standard input, http(s) URLs, and
// "git:<rev>:<path>" for a file at a revision of the enclosing repository.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/erraggy/specdiff"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

// Kind is the type of a document reference.
type Kind string

const (
	// KindFile is a path on the local filesystem
	KindFile Kind = "file"
	// KindURL is an http or https URL
	KindURL Kind = "url"
	// KindStdin is "-", read from standard input
	KindStdin Kind = "stdin"
	// KindGit is git:<rev>:<path>, read from the enclosing repository
	KindGit Kind = "git"
)

// Ref is a parsed document reference.
type Ref struct {
	Kind Kind
	// Location is the file path or URL; for git references, the original string
	Location string
	// Rev and Path are set for git references
	Rev  string
	Path string
}

// String returns the reference as the user wrote it.
func (r Ref) String() string {
	if r.Kind == KindStdin {
		return "-"
	}
	return r.Location
}

// ParseRef classifies a document reference.
func ParseRef(s string) (Ref, error) {
	switch {
	case s == "":
		return Ref{}, &oaserrors.ConfigError{Option: "source", Message: "empty document reference"}
	case s == "-":
		return Ref{Kind: KindStdin, Location: s}, nil
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return Ref{Kind: KindURL, Location: s}, nil
	case strings.HasPrefix(s, "git:"):
		rev, path, ok := strings.Cut(strings.TrimPrefix(s, "git:"), ":")
		if !ok || rev == "" || path == "" {
			return Ref{}, &oaserrors.ConfigError{Option: "source", Value: s, Message: "expected git:<rev>:<path>"}
		}
		return Ref{Kind: KindGit, Location: s, Rev: rev, Path: path}, nil
	}
	return Ref{Kind: KindFile, Location: s}, nil
}

// Document is loaded document text with the name it should be reported under.
type Document struct {
	Ref  Ref
	Data []byte
}

// Loader reads documents from any supported reference.
type Loader struct {
	// HTTPClient is used for URLs. If nil, a client with Timeout is created.
	HTTPClient *http.Client
	// Timeout bounds each URL attempt. Default: 30s
	Timeout time.Duration
	// MaxRetries bounds URL retries after the first attempt. Default: 0
	MaxRetries uint64
	// UserAgent is sent with URL requests. Default: specdiff.UserAgent()
	UserAgent string
	// RepoDir is where git references look for a repository. Default: "."
	RepoDir string
	// Stdin is read for "-". Default: os.Stdin
	Stdin io.Reader
	// MaxSize bounds the bytes read from any source. Default: parser.DefaultMaxFileSize
	MaxSize int64
}

func (l *Loader) maxSize() int64 {
	if l.MaxSize > 0 {
		return l.MaxSize
	}
	return parser.DefaultMaxFileSize
}

// Load resolves ref and returns its contents.
func (l *Loader) Load(ctx context.Context, ref string) (*Document, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch r.Kind {
	case KindStdin:
		data, err = l.readStdin()
	case KindURL:
		data, err = l.fetch(ctx, r.Location)
	case KindGit:
		data, err = l.readGit(r)
	default:
		data, err = l.readFile(r.Location)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Ref: r, Data: data}, nil
}

// Parse loads ref and parses it as one side of a comparison.
func (l *Loader) Parse(ctx context.Context, ref string, side oaserrors.Side, log parser.Logger) (*parser.Document, error) {
	doc, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{
		parser.WithBytes(doc.Data),
		parser.WithSourceName(doc.Ref.String()),
		parser.WithSide(side),
		parser.WithMaxFileSize(l.maxSize()),
	}
	if log != nil {
		opts = append(opts, parser.WithLogger(log))
	}
	return parser.ParseWithOptions(opts...)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, &oaserrors.SourceError{Source: path, Kind: string(KindFile), Cause: err}
	}
	defer func() { _ = f.Close() }()
	data, err := l.readAll(f)
	if err != nil {
		return nil, &oaserrors.SourceError{Source: path, Kind: string(KindFile), Cause: err}
	}
	return data, nil
}

func (l *Loader) readStdin() ([]byte, error) {
	in := l.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := l.readAll(in)
	if err != nil {
		return nil, &oaserrors.SourceError{Source: "-", Kind: string(KindStdin), Cause: err}
	}
	return data, nil
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	limit := l.maxSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %s", parser.FormatBytes(limit))
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.HTTPClient
	if client == nil {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = specdiff.UserAgent()
	}

	var data []byte
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("HTTP %s", resp.Status)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("HTTP %s", resp.Status))
		}
		body, err := l.readAll(resp.Body)
		if err != nil {
			return backoff.Permanent(err)
		}
		data = body
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, l.MaxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, &oaserrors.SourceError{Source: url, Kind: string(KindURL), Cause: err}
	}
	return data, nil
}
