package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"profile-readme/internal/dates"
	"profile-readme/internal/model"
)

const (
	DefaultBaseURL = "https://registry.npmjs.org"
	// packagePage is the browsable page; the registry document has no link to it.
	packagePage = "https://www.npmjs.com/package/"
)

// Client reads the latest dist-tag of each configured package from the npm registry.
type Client struct {
	baseURL   string
	packages  []string
	userAgent string
	client    *http.Client
}

func NewClient(baseURL string, packages []string, userAgent string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		packages:  packages,
		userAgent: userAgent,
		client:    httpClient,
	}
}

type packageDoc struct {
	Name     string            `json:"name"`
	DistTags map[string]string `json:"dist-tags"`
	Time     map[string]string `json:"time"`
}

func (c *Client) Name() string { return "npm" }

func (c *Client) Targets() []string { return c.packages }

func (c *Client) Fetch(ctx context.Context, pkg string) ([]model.Release, error) {
	rel, err := c.Latest(ctx, pkg)
	if err != nil {
		return nil, err
	}
	return []model.Release{rel}, nil
}

// Latest fetches the package document and returns the version tagged "latest".
func (c *Client) Latest(ctx context.Context, pkg string) (model.Release, error) {
	var zero model.Release
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(pkg))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	slog.Debug("npm: fetching package", "package", pkg)
	resp, err := c.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("npm: package %s status %d", pkg, resp.StatusCode)
	}
	var doc packageDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return zero, fmt.Errorf("npm: decode %s: %w", pkg, err)
	}
	return convertPackage(pkg, doc)
}

func convertPackage(pkg string, doc packageDoc) (model.Release, error) {
	var zero model.Release
	version := strings.TrimSpace(doc.DistTags["latest"])
	if version == "" {
		return zero, fmt.Errorf("npm: package %s has no latest dist-tag", pkg)
	}
	date, err := dates.Parse(doc.Time[version])
	if err != nil {
		return zero, fmt.Errorf("npm: package %s publish time: %w", pkg, err)
	}
	name := doc.Name
	if strings.TrimSpace(name) == "" {
		name = pkg
	}
	return model.Release{
		Name:    name,
		Version: version,
		Date:    date,
		URL:     packagePage + name,
	}, nil
}
