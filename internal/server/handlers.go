package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/specdiff"
	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/internal/logging"
	"github.com/erraggy/specdiff/linediff"
	"github.com/erraggy/specdiff/lint"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
	"github.com/erraggy/specdiff/releasenotes"
)

// Multipart field names accepted by the upload endpoints.
const (
	FieldOldFile = "old_file"
	FieldNewFile = "new_file"
	FieldDate    = "date"
)

// analysis is a cached comparison result.
type analysis struct {
	report   *differ.Report
	warnings []string
}

// analyzeResponse is the /api/analyze body: the report plus any warnings.
type analyzeResponse struct {
	*differ.Report
	Warnings []string `json:"warnings,omitempty"`
}

type errorBody struct {
	Detail string         `json:"detail"`
	Side   oaserrors.Side `json:"side,omitempty"`
}

// uploads holds the two documents of a request.
type uploads struct {
	old, new []byte
}

func (u uploads) cacheKey() string {
	o, n := sha256.Sum256(u.old), sha256.Sum256(u.new)
	return hex.EncodeToString(o[:]) + hex.EncodeToString(n[:])
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	up, err := s.readUploads(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.analyze(r, up)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Report: a.report, Warnings: a.warnings})
}

func (s *Server) handleReleaseNotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	up, err := s.readUploads(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := []releasenotes.Option{releasenotes.WithDate(s.now())}
	if date := r.FormValue(FieldDate); date != "" {
		opts = append(opts, releasenotes.WithDateString(date))
	}
	a, err := s.analyze(r, up)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	notes, err := releasenotes.Generate(a.report, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, notes)
}

func (s *Server) handleFullDiff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	up, err := s.readUploads(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linediff.Compare(string(up.old), string(up.new)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": specdiff.Version()})
}

// readUploads reads both multipart files within the upload limit.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) (uploads, error) {
	limit := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, 2*limit + 1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		return uploads{}, &requestError{msg: "invalid multipart form", cause: err}
	}
	oldData, err := readFormFile(r, FieldOldFile, limit)
	if err != nil {
		return uploads{}, err
	}
	newData, err := readFormFile(r, FieldNewFile, limit)
	if err != nil {
		return uploads{}, err
	}
	return uploads{old: oldData, new: newData}, nil
}

func readFormFile(r *http.Request, field string, limit int64) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, &requestError{msg: "missing file field " + field, cause: err}
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, &requestError{msg: "failed to read " + field, cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &requestError{msg: field + " exceeds " + parser.FormatBytes(limit)}
	}
	return data, nil
}

// analyze parses both uploads concurrently and compares them, consulting the cache first.
func (s *Server) analyze(r *http.Request, up uploads) (*analysis, error) {
	key := up.cacheKey()
	if s.cache != nil {
		if a, ok := s.cache.Get(key); ok {
			s.metrics.cacheHits.Inc()
			return a, nil
		}
	}

	start := time.Now()
	log := logging.NewZapAdapter(s.log.With(zap.String("request_id", RequestIDFromContext(r.Context()))))

	var oldDoc, newDoc *parser.Document
	var oldErr, newErr error
	var g errgroup.Group
	g.Go(func() error {
		oldDoc, oldErr = parseUpload(up.old, oaserrors.SideOld, log)
		return oldErr
	})
	g.Go(func() error {
		newDoc, newErr = parseUpload(up.new, oaserrors.SideNew, log)
		return newErr
	})
	if err := g.Wait(); err != nil {
		s.metrics.comparisons.WithLabelValues("error").Inc()
		// Report the old side first when both fail.
		if oldErr != nil {
			return nil, oldErr
		}
		return nil, newErr
	}

	d := &differ.Differ{Policy: s.policy, Logger: log}
	report, err := d.Compare(oldDoc, newDoc)
	if err != nil {
		s.metrics.comparisons.WithLabelValues("error").Inc()
		return nil, err
	}

	a := &analysis{report: report, warnings: slices.Clone(report.Warnings)}
	if s.validate {
		for _, issue := range lint.Pair(r.Context(), oldDoc, newDoc) {
			a.warnings = append(a.warnings, issue.String())
		}
	}

	s.metrics.comparisons.WithLabelValues("ok").Inc()
	s.metrics.compareDuration.Observe(time.Since(start).Seconds())
	s.metrics.breakingChanges.Add(float64(report.Summary.BreakingCount))
	if s.cache != nil {
		s.cache.Add(key, a)
	}
	return a, nil
}

func parseUpload(data []byte, side oaserrors.Side, log parser.Logger) (*parser.Document, error) {
	return parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithSourceName(string(side)+"_file"),
		parser.WithSide(side),
		parser.WithLogger(log.With("side", string(side))),
	)
}

// requestError is a malformed request.
type requestError struct {
	msg   string
	cause error
}

func (e *requestError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *requestError) Unwrap() error { return e.cause }

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var re *requestError
	switch {
	case errors.As(err, &re), errors.Is(err, oaserrors.ErrParse), errors.Is(err, oaserrors.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, oaserrors.ErrUnsupportedVersion), errors.Is(err, oaserrors.ErrAlignmentAmbiguity):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Detail: err.Error(), Side: oaserrors.SideOf(err)}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
		body.Detail = "internal server error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// spaHandler serves files from dir and falls back to index.html for unknown paths.
func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSON(w, http.StatusNotFound, errorBody{Detail: "not found"})
			return
		}
		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
