package readme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"profile-readme/internal/model"
)

// Aggregator supplies the records of both sections.
type Aggregator interface {
	LatestReleases(ctx context.Context) ([]model.Release, error)
	LatestPosts(ctx context.Context) ([]model.Post, error)
}

// Generator renders the profile document and writes it to Output.
type Generator struct {
	Aggregator Aggregator
	Template   *template.Template
	Output     string
}

// Build collects both sections and renders the document.
func (g *Generator) Build(ctx context.Context) (string, error) {
	rels, err := g.Aggregator.LatestReleases(ctx)
	if err != nil {
		return "", fmt.Errorf("latest releases: %w", err)
	}
	posts, err := g.Aggregator.LatestPosts(ctx)
	if err != nil {
		return "", fmt.Errorf("latest posts: %w", err)
	}
	return Render(g.Template, Data{
		LatestReleases: ReleaseBlock(rels),
		TheBlog:        PostBlock(posts),
	})
}

// Write builds the document and overwrites Output with it.
func (g *Generator) Write(ctx context.Context) (string, error) {
	content, err := g.Build(ctx)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(g.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(g.Output, []byte(content), 0o644); err != nil {
		return "", err
	}
	slog.Info("readme: written", "path", g.Output, "bytes", len(content))
	return g.Output, nil
}
