package readme

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"profile-readme/internal/dates"
	"profile-readme/internal/model"
)

// Data is substituted into the document template.
type Data struct {
	LatestReleases string
	TheBlog        string
}

//go:embed readme.tmpl
var readmeTpl string

var compiled = template.Must(parse(readmeTpl))

// parse compiles both the embedded and the file templates.
func parse(text string) (*template.Template, error) {
	return template.New("readme").Parse(text)
}

// DefaultTemplate returns the embedded profile template.
func DefaultTemplate() *template.Template {
	return compiled
}

// LoadTemplate parses a template file. An empty path returns the embedded one.
func LoadTemplate(path string) (*template.Template, error) {
	if strings.TrimSpace(path) == "" {
		return compiled, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readme: read template: %w", err)
	}
	t, err := parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("readme: parse template %s: %w", path, err)
	}
	return t, nil
}

// Render executes tpl (nil uses the embedded template) with d.
func Render(tpl *template.Template, d Data) (string, error) {
	if tpl == nil {
		tpl = compiled
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReleaseLine formats one release, e.g.
// `- <a href="https://pypi.org/project/lmtpd/">lmtpd</a> 7.0.0 released on 2021-01-01`.
func ReleaseLine(r model.Release) string {
	return fmt.Sprintf("- %s %s released on %s", link(r.URL, r.Name), r.Version, dates.Day(r.Date))
}

// PostLine formats one post, e.g. `- (blog) <a href="...">Hello</a> posted on 2021-06-01`.
func PostLine(p model.Post) string {
	return fmt.Sprintf("- (%s) %s posted on %s", p.Type, link(p.URL, p.Title), dates.Day(p.Date))
}

func link(url, text string) string {
	if strings.TrimSpace(url) == "" {
		return text
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, text)
}

// ReleaseBlock joins the formatted release lines with newlines.
func ReleaseBlock(rels []model.Release) string {
	lines := make([]string, 0, len(rels))
	for _, r := range rels {
		lines = append(lines, ReleaseLine(r))
	}
	return strings.Join(lines, "\n")
}

// PostBlock joins the formatted post lines with newlines.
func PostBlock(posts []model.Post) string {
	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		lines = append(lines, PostLine(p))
	}
	return strings.Join(lines, "\n")
}
