package gittags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"profile-readme/internal/model"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repo is a git repository whose annotated tags are treated as releases.
type Repo struct {
	Name string
	URL  string
}

// CloneFunc clones url as a bare repository into dir.
type CloneFunc func(ctx context.Context, dir, url string) (*git.Repository, error)

// Reader turns the annotated tags of each configured repository into releases.
type Reader struct {
	repos  []Repo
	byName map[string]Repo
	clone  CloneFunc
	tmpDir string // parent for clone dirs; empty uses os.TempDir
}

func NewReader(repos []Repo) *Reader {
	byName := make(map[string]Repo, len(repos))
	for _, r := range repos {
		byName[r.Name] = r
	}
	return &Reader{repos: repos, byName: byName, clone: bareClone}
}

// WithClone replaces the clone step.
func (r *Reader) WithClone(fn CloneFunc) *Reader {
	r2 := *r
	if fn != nil {
		r2.clone = fn
	}
	return &r2
}

func (r *Reader) Name() string { return "git" }

// Targets returns the repository names in configured order.
func (r *Reader) Targets() []string {
	out := make([]string, 0, len(r.repos))
	for _, repo := range r.repos {
		out = append(out, repo.Name)
	}
	return out
}

// Fetch clones the named repository into a temporary directory and reads
// its tags. The directory is removed before Fetch returns.
func (r *Reader) Fetch(ctx context.Context, name string) ([]model.Release, error) {
	repo, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("gittags: unknown repository %q", name)
	}
	dir, err := os.MkdirTemp(r.tmpDir, "profile-readme-git-*")
	if err != nil {
		return nil, fmt.Errorf("gittags: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	slog.Debug("gittags: cloning repository", "name", repo.Name, "url", repo.URL)
	gr, err := r.clone(ctx, dir, repo.URL)
	if err != nil {
		return nil, fmt.Errorf("gittags: clone %s: %w", repo.URL, err)
	}
	return Releases(gr, repo.Name, repo.URL)
}

// Releases returns one record per annotated tag in gr. Lightweight tags
// carry no tag object and are skipped. The date is the tagger time in the
// tagger's own UTC offset.
func Releases(gr *git.Repository, name, url string) ([]model.Release, error) {
	iter, err := gr.Tags()
	if err != nil {
		return nil, fmt.Errorf("gittags: list tags: %w", err)
	}

	var out []model.Release
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag, err := gr.TagObject(ref.Hash())
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gittags: tag %s: %w", ref.Name().Short(), err)
		}
		out = append(out, model.Release{
			Name:    name,
			Version: tag.Name,
			Date:    tag.Tagger.When,
			URL:     url,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func bareClone(ctx context.Context, dir, url string) (*git.Repository, error) {
	return git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
}
