package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"profile-readme/internal/model"
	"profile-readme/internal/retry"
)

// DefaultTopN is how many records each block of the profile keeps.
const DefaultTopN = 5

// Dated is implemented by records that can be ordered by date.
type Dated interface {
	When() time.Time
}

// Source yields records for a fixed list of targets (projects, repositories,
// feed labels). One Fetch is one network fetch and the unit that is retried.
type Source[T any] interface {
	Name() string
	Targets() []string
	Fetch(ctx context.Context, target string) ([]T, error)
}

// Collect fetches every target of every source in order, each through the
// retry policy. The first exhausted retry budget aborts the collection.
func Collect[T any](ctx context.Context, p retry.Policy, sources []Source[T]) ([]T, error) {
	var out []T
	for _, src := range sources {
		op := src.Name() + ".Fetch"
		for _, target := range src.Targets() {
			target := target
			items, err := retry.Do(ctx, p, op, []any{target}, func(ctx context.Context) ([]T, error) {
				return src.Fetch(ctx, target)
			})
			if err != nil {
				return nil, err
			}
			slog.Info("aggregate: fetched", "source", src.Name(), "target", target, "records", len(items))
			out = append(out, items...)
		}
	}
	return out, nil
}

// Latest returns the n most recent items, newest first. Items with equal
// dates keep their input order. n <= 0 keeps every item. items is not modified.
func Latest[T Dated](items []T, n int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When().After(out[j].When())
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Aggregator merges releases and posts from their sources.
type Aggregator struct {
	Releases []Source[model.Release]
	Posts    []Source[model.Post]
	Retry    retry.Policy
	TopN     int
}

func (a *Aggregator) topN() int {
	if a.TopN <= 0 {
		return DefaultTopN
	}
	return a.TopN
}

// LatestReleases collects all releases and keeps the most recent TopN.
func (a *Aggregator) LatestReleases(ctx context.Context) ([]model.Release, error) {
	all, err := Collect(ctx, a.Retry, a.Releases)
	if err != nil {
		return nil, err
	}
	return Latest(all, a.topN()), nil
}

// LatestPosts collects all posts and keeps the most recent TopN.
func (a *Aggregator) LatestPosts(ctx context.Context) ([]model.Post, error) {
	all, err := Collect(ctx, a.Retry, a.Posts)
	if err != nil {
		return nil, err
	}
	return Latest(all, a.topN()), nil
}
