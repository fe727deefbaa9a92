package cmd

import (
	"net/http"

	"profile-readme/internal/aggregate"
	"profile-readme/internal/config"
	"profile-readme/internal/feeds"
	"profile-readme/internal/gittags"
	"profile-readme/internal/model"
	"profile-readme/internal/npm"
	"profile-readme/internal/pypi"
	"profile-readme/internal/readme"
	"profile-readme/internal/retry"

	"github.com/samber/lo"
)

// newAggregator wires every configured source. Release sources keep the
// npm, PyPI, git discovery order.
func newAggregator(cfg config.Config) *aggregate.Aggregator {
	hc := &http.Client{Timeout: cfg.HTTPTimeout()}
	ua := cfg.HTTP.UserAgent

	repos := lo.Map(cfg.Sources.Git.Repos, func(r config.GitRepoConfig, _ int) gittags.Repo {
		return gittags.Repo{Name: r.Name, URL: r.URL}
	})
	feedList := lo.Map(cfg.Feeds, func(f config.FeedConfig, _ int) feeds.Feed {
		return feeds.Feed{Type: f.Type, URL: f.URL}
	})

	return &aggregate.Aggregator{
		Releases: []aggregate.Source[model.Release]{
			npm.NewClient(cfg.Sources.NPM.BaseURL, cfg.Sources.NPM.Packages, ua, hc),
			pypi.NewClient(cfg.Sources.PyPI.BaseURL, cfg.Sources.PyPI.Projects, ua, hc),
			gittags.NewReader(repos),
		},
		Posts: []aggregate.Source[model.Post]{
			feeds.NewReader(feedList, ua, hc),
		},
		Retry: retry.Policy{
			Attempts:  cfg.Retry.Attempts,
			BaseDelay: cfg.RetryBaseDelay(),
		},
		TopN: cfg.Readme.TopN,
	}
}

func newGenerator(cfg config.Config) (*readme.Generator, error) {
	tpl, err := readme.LoadTemplate(cfg.Readme.Template)
	if err != nil {
		return nil, err
	}
	return &readme.Generator{
		Aggregator: newAggregator(cfg),
		Template:   tpl,
		Output:     cfg.Readme.Output,
	}, nil
}
