package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"profile-readme/internal/dates"
	"profile-readme/internal/model"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

// Feed binds a category label (blog, art, food, ...) to a feed URL.
type Feed struct {
	Type string
	URL  string
}

// Reader turns Atom/RSS feeds into post records.
type Reader struct {
	feeds     []Feed
	userAgent string
	client    *http.Client
}

func NewReader(feeds []Feed, userAgent string, httpClient *http.Client) *Reader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Reader{feeds: feeds, userAgent: userAgent, client: httpClient}
}

func (r *Reader) Name() string { return "feeds" }

// Targets returns the category labels in configured order.
func (r *Reader) Targets() []string {
	return lo.Map(r.feeds, func(f Feed, _ int) string { return f.Type })
}

// Fetch downloads and parses the feed for the given category.
func (r *Reader) Fetch(ctx context.Context, typ string) ([]model.Post, error) {
	f, ok := lo.Find(r.feeds, func(f Feed) bool { return f.Type == typ })
	if !ok {
		return nil, fmt.Errorf("feeds: unknown feed type %q", typ)
	}
	feed, err := r.load(ctx, f.URL)
	if err != nil {
		return nil, err
	}
	posts := make([]model.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		// Atom <published> (falling back to <updated>) or RSS <pubDate>.
		when, err := dates.Parse(item.Published)
		if err != nil {
			return nil, fmt.Errorf("feeds: %s entry %q: %w", f.URL, item.Title, err)
		}
		posts = append(posts, model.Post{
			Type:  f.Type,
			Title: strings.TrimSpace(item.Title),
			Date:  when,
			URL:   item.Link,
		})
	}
	slog.Debug("feeds: parsed feed", "type", f.Type, "entries", len(posts))
	return posts, nil
}

func (r *Reader) load(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feeds: %s status %d", url, resp.StatusCode)
	}
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feeds: parse %s: %w", url, err)
	}
	return feed, nil
}
