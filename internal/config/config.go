package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// HTTPConfig is shared by every registry and feed client.
type HTTPConfig struct {
	Timeout   string `mapstructure:"timeout" yaml:"timeout"` // duration string, e.g., "30s"
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// RetryConfig controls the backoff applied to every network fetch.
type RetryConfig struct {
	Attempts  int    `mapstructure:"attempts" yaml:"attempts"`
	BaseDelay string `mapstructure:"base_delay" yaml:"base_delay"` // sleep after the first failure, doubled each time
}

// PyPIConfig lists the Python projects to report.
type PyPIConfig struct {
	BaseURL  string   `mapstructure:"base_url" yaml:"base_url"`
	Projects []string `mapstructure:"projects" yaml:"projects"`
}

// NPMConfig lists the node packages to report.
type NPMConfig struct {
	BaseURL  string   `mapstructure:"base_url" yaml:"base_url"`
	Packages []string `mapstructure:"packages" yaml:"packages"`
}

// GitRepoConfig is a repository whose annotated tags count as releases.
type GitRepoConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

type GitConfig struct {
	Repos []GitRepoConfig `mapstructure:"repos" yaml:"repos"`
}

// DataSources groups the release sources.
type DataSources struct {
	PyPI PyPIConfig `mapstructure:"pypi" yaml:"pypi"`
	NPM  NPMConfig  `mapstructure:"npm" yaml:"npm"`
	Git  GitConfig  `mapstructure:"git" yaml:"git"`
}

// FeedConfig binds a post category label to a feed URL.
type FeedConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// ReadmeConfig controls rendering of the profile document.
type ReadmeConfig struct {
	Output   string `mapstructure:"output" yaml:"output"`
	Template string `mapstructure:"template" yaml:"template"` // optional template file; empty uses the embedded one
	TopN     int    `mapstructure:"top_n" yaml:"top_n"`
	Interval string `mapstructure:"interval" yaml:"interval"` // serve mode only
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig    `mapstructure:"app" yaml:"app"`
	HTTP    HTTPConfig   `mapstructure:"http" yaml:"http"`
	Retry   RetryConfig  `mapstructure:"retry" yaml:"retry"`
	Sources DataSources  `mapstructure:"sources" yaml:"sources"`
	Feeds   []FeedConfig `mapstructure:"feeds" yaml:"feeds"`
	Readme  ReadmeConfig `mapstructure:"readme" yaml:"readme"`
}

var (
	defaultPyPIProjects = []string{
		"django-elevate",
		"django-sendfile2",
		"django-two-factor-auth",
		"exhibition",
		"lmtpd",
		"multiblock",
		"salmon-mail",
	}
	defaultNPMPackages = []string{"smallquery"}
	defaultGitRepos    = []GitRepoConfig{
		{Name: "lazycat", URL: "https://github.com/moggers87-games/lazycat"},
		{Name: "Inboxen", URL: "https://github.com/Inboxen/Inboxen"},
		{Name: "apricots", URL: "https://github.com/moggers87/apricots"},
	}
	defaultFeeds = []FeedConfig{
		{Type: "blog", URL: "https://moggers87.co.uk/blog/atom.xml"},
		{Type: "art", URL: "https://moggers87.co.uk/art/atom.xml"},
		{Type: "food", URL: "https://moggers87.co.uk/food/atom.xml"},
	}
)

// FillDefaults applies default values if not provided. Lists are only
// defaulted when absent, so an explicit empty list disables a source.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.HTTP.Timeout == "" {
		c.HTTP.Timeout = "30s"
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "profile-readme"
	}
	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 5
	}
	if c.Retry.BaseDelay == "" {
		c.Retry.BaseDelay = "1s"
	}
	if c.Sources.PyPI.BaseURL == "" {
		c.Sources.PyPI.BaseURL = "https://pypi.org"
	}
	if c.Sources.PyPI.Projects == nil {
		c.Sources.PyPI.Projects = append([]string(nil), defaultPyPIProjects...)
	}
	if c.Sources.NPM.BaseURL == "" {
		c.Sources.NPM.BaseURL = "https://registry.npmjs.org"
	}
	if c.Sources.NPM.Packages == nil {
		c.Sources.NPM.Packages = append([]string(nil), defaultNPMPackages...)
	}
	if c.Sources.Git.Repos == nil {
		c.Sources.Git.Repos = append([]GitRepoConfig(nil), defaultGitRepos...)
	}
	if c.Feeds == nil {
		c.Feeds = append([]FeedConfig(nil), defaultFeeds...)
	}
	if c.Readme.Output == "" {
		c.Readme.Output = "README.md"
	}
	if c.Readme.TopN == 0 {
		c.Readme.TopN = 5
	}
	if c.Readme.Interval == "" {
		c.Readme.Interval = "24h"
	}
}

// Validate reports entries that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	for _, d := range []struct{ key, val string }{
		{"http.timeout", c.HTTP.Timeout},
		{"retry.base_delay", c.Retry.BaseDelay},
		{"readme.interval", c.Readme.Interval},
	} {
		if _, err := time.ParseDuration(d.val); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", d.key, err))
		}
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("invalid retry.attempts: %d", c.Retry.Attempts))
	}
	if c.Readme.TopN < 1 {
		errs = append(errs, fmt.Errorf("invalid readme.top_n: %d", c.Readme.TopN))
	}
	seenRepo := map[string]struct{}{}
	for i, r := range c.Sources.Git.Repos {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.URL) == "" {
			errs = append(errs, fmt.Errorf("sources.git.repos[%d]: name and url are required", i))
			continue
		}
		if _, dup := seenRepo[r.Name]; dup {
			errs = append(errs, fmt.Errorf("sources.git.repos[%d]: duplicate name %q", i, r.Name))
		}
		seenRepo[r.Name] = struct{}{}
	}
	seenFeed := map[string]struct{}{}
	for i, f := range c.Feeds {
		if strings.TrimSpace(f.Type) == "" || strings.TrimSpace(f.URL) == "" {
			errs = append(errs, fmt.Errorf("feeds[%d]: type and url are required", i))
			continue
		}
		if _, dup := seenFeed[f.Type]; dup {
			errs = append(errs, fmt.Errorf("feeds[%d]: duplicate type %q", i, f.Type))
		}
		seenFeed[f.Type] = struct{}{}
	}
	return errors.Join(errs...)
}

// HTTPTimeout returns the parsed client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	d, _ := time.ParseDuration(c.HTTP.Timeout)
	return d
}

func (c *Config) RetryBaseDelay() time.Duration {
	d, _ := time.ParseDuration(c.Retry.BaseDelay)
	return d
}

func (c *Config) UpdateInterval() time.Duration {
	d, _ := time.ParseDuration(c.Readme.Interval)
	return d
}
