package commands

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/internal/logging"
	"github.com/erraggy/specdiff/internal/source"
	"github.com/erraggy/specdiff/lint"
	"github.com/erraggy/specdiff/oaserrors"
	"github.com/erraggy/specdiff/parser"
)

func (a *app) loader() *source.Loader {
	return &source.Loader{
		Timeout:    a.cfg.Fetch.Timeout,
		MaxRetries: a.cfg.Fetch.MaxRetries,
		Stdin:      a.stdin,
	}
}

func checkStdin(oldRef, newRef string) error {
	if oldRef == "-" && newRef == "-" {
		return &oaserrors.ConfigError{Option: "documents", Value: "-", Message: "only one document can be read from stdin"}
	}
	return nil
}

// loadRaw reads both references concurrently without parsing them.
func (a *app) loadRaw(ctx context.Context, oldRef, newRef string) (oldData, newData []byte, err error) {
	if err := checkStdin(oldRef, newRef); err != nil {
		return nil, nil, err
	}
	l := a.loader()
	var oldErr, newErr error
	var g errgroup.Group
	g.Go(func() error {
		var doc *source.Document
		doc, oldErr = l.Load(ctx, oldRef)
		if oldErr == nil {
			oldData = doc.Data
		}
		return oldErr
	})
	g.Go(func() error {
		var doc *source.Document
		doc, newErr = l.Load(ctx, newRef)
		if newErr == nil {
			newData = doc.Data
		}
		return newErr
	})
	if g.Wait() != nil {
		return nil, nil, firstSide(oldErr, newErr)
	}
	return oldData, newData, nil
}

// loadPair loads and parses both references concurrently.
func (a *app) loadPair(ctx context.Context, oldRef, newRef string) (*parser.Document, *parser.Document, error) {
	if err := checkStdin(oldRef, newRef); err != nil {
		return nil, nil, err
	}
	l := a.loader()
	log := logging.NewZapAdapter(a.log)

	var oldDoc, newDoc *parser.Document
	var oldErr, newErr error
	var g errgroup.Group
	g.Go(func() error {
		oldDoc, oldErr = l.Parse(ctx, oldRef, oaserrors.SideOld, log.With("side", string(oaserrors.SideOld)))
		return oldErr
	})
	g.Go(func() error {
		newDoc, newErr = l.Parse(ctx, newRef, oaserrors.SideNew, log.With("side", string(oaserrors.SideNew)))
		return newErr
	})
	if g.Wait() != nil {
		return nil, nil, firstSide(oldErr, newErr)
	}
	return oldDoc, newDoc, nil
}

// firstSide reports the old side's error when both sides failed.
func firstSide(oldErr, newErr error) error {
	if oldErr != nil {
		return oldErr
	}
	return newErr
}

// compare loads both documents and compares them under the configured policy.
// Lint issues, when enabled, are appended to the report's warnings.
func (a *app) compare(ctx context.Context, oldRef, newRef string) (*differ.Report, error) {
	policy, err := a.cfg.BuildPolicy()
	if err != nil {
		return nil, err
	}
	oldDoc, newDoc, err := a.loadPair(ctx, oldRef, newRef)
	if err != nil {
		return nil, err
	}

	d := &differ.Differ{Policy: policy, Logger: logging.NewZapAdapter(a.log)}
	report, err := d.Compare(oldDoc, newDoc)
	if err != nil {
		return nil, err
	}
	warnings := slices.Clone(report.Warnings)
	if a.cfg.Validate {
		for _, issue := range lint.Pair(ctx, oldDoc, newDoc) {
			warnings = append(warnings, issue.String())
		}
	}
	for _, w := range warnings {
		Writef(a.stderr, "Warning: %s\n", w)
	}
	return report, nil
}
