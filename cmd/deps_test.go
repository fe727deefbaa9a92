package cmd

import (
	"testing"
	"time"

	"profile-readme/internal/config"
)

func TestNewAggregatorWiresSourcesInOrder(t *testing.T) {
	var cfg config.Config
	cfg.FillDefaults()
	cfg.Retry.BaseDelay = "2s"

	agg := newAggregator(cfg)
	var names []string
	targets := 0
	for _, s := range agg.Releases {
		names = append(names, s.Name())
		targets += len(s.Targets())
	}
	want := []string{"npm", "pypi", "git"}
	if len(names) != len(want) {
		t.Fatalf("release sources = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("release sources = %v, want %v", names, want)
		}
	}
	if targets != 1+7+3 {
		t.Errorf("release targets = %d, want 11", targets)
	}
	if len(agg.Posts) != 1 || len(agg.Posts[0].Targets()) != 3 {
		t.Errorf("post sources not wired from feeds config")
	}
	if agg.Retry.Attempts != 5 || agg.Retry.BaseDelay != 2*time.Second {
		t.Errorf("retry policy = %+v", agg.Retry)
	}
	if agg.TopN != 5 {
		t.Errorf("top n = %d", agg.TopN)
	}
}

func TestNewGeneratorRejectsMissingTemplate(t *testing.T) {
	var cfg config.Config
	cfg.FillDefaults()
	cfg.Readme.Template = t.TempDir() + "/missing.tmpl"
	if _, err := newGenerator(cfg); err == nil {
		t.Fatalf("expected error for missing template file")
	}
}
