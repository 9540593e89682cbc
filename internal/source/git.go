package source

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/erraggy/specdiff/oaserrors"
)

// readGit reads a file at a revision. Path is relative to the repository root.
func (l *Loader) readGit(r Ref) ([]byte, error) {
	dir := l.RepoDir
	if dir == "" {
		dir = "."
	}
	fail := func(msg string, err error) error {
		return &oaserrors.SourceError{Source: r.Location, Kind: string(KindGit), Message: msg, Cause: err}
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fail("opening repo", err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(r.Rev))
	if err != nil {
		return nil, fail("resolving revision "+r.Rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fail("reading commit", err)
	}
	file, err := commit.File(r.Path)
	if err != nil {
		return nil, fail("reading "+r.Path, err)
	}
	if file.Size > l.maxSize() {
		return nil, fail("file too large", nil)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fail("reading "+r.Path, err)
	}
	return []byte(contents), nil
}
