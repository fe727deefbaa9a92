package pypi

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

// DefaultBaseURL is the public package index.
const DefaultBaseURL = "https://pypi.org"

// Client reads the latest release of each configured project from the
// PyPI JSON API. Docs: https://warehouse.pypa.io/api-reference/json.html
type Client struct {
	baseURL   string
	projects  []string
	userAgent string
	client    *http.Client
}

// NewClient creates a PyPI client. An empty baseURL uses DefaultBaseURL and
// a nil httpClient gets a 30s timeout.
func NewClient(baseURL string, projects []string, userAgent string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		projects:  projects,
		userAgent: userAgent,
		client:    httpClient,
	}
}

// projectDoc mirrors the subset of /pypi/{project}/json we read.
type projectDoc struct {
	Info struct {
		Name       string `json:"name"`
		Version    string `json:"version"`
		PackageURL string `json:"package_url"`
	} `json:"info"`
	Releases map[string][]fileDoc `json:"releases"`
	URLs     []fileDoc            `json:"urls"`
}

type fileDoc struct {
	UploadTime string `json:"upload_time"`
}

func (c *Client) Name() string { return "pypi" }

func (c *Client) Targets() []string { return c.projects }

// Fetch returns the current release of project.
func (c *Client) Fetch(ctx context.Context, project string) ([]model.Release, error) {
	rel, err := c.Latest(ctx, project)
	if err != nil {
		return nil, err
	}
	return []model.Release{rel}, nil
}

// Latest fetches the project document and extracts its current version.
func (c *Client) Latest(ctx context.Context, project string) (model.Release, error) {
	var zero model.Release
	endpoint := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, url.PathEscape(project))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	slog.Debug("pypi: fetching project", "project", project)
	resp, err := c.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("pypi: project %s status %d", project, resp.StatusCode)
	}
	var doc projectDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return zero, fmt.Errorf("pypi: decode %s: %w", project, err)
	}
	return convertProject(project, doc)
}

func convertProject(project string, doc projectDoc) (model.Release, error) {
	var zero model.Release
	version := strings.TrimSpace(doc.Info.Version)
	if version == "" {
		return zero, fmt.Errorf("pypi: project %s has no version", project)
	}
	// Newer responses may carry an empty release list; the files of the
	// current version are also listed under "urls".
	files := doc.Releases[version]
	if len(files) == 0 {
		files = doc.URLs
	}
	if len(files) == 0 {
		return zero, fmt.Errorf("pypi: project %s has no files for %s", project, version)
	}
	date, err := dates.Parse(files[0].UploadTime)
	if err != nil {
		return zero, fmt.Errorf("pypi: project %s upload time: %w", project, err)
	}
	name := doc.Info.Name
	if strings.TrimSpace(name) == "" {
		name = project
	}
	return model.Release{
		Name:    name,
		Version: version,
		Date:    date,
		URL:     doc.Info.PackageURL,
	}, nil
}
