package readme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"profile-readme/internal/model"
)

func TestReleaseLine(t *testing.T) {
	r := model.Release{
		Name:    "lmtpd",
		Version: "7.0.0",
		Date:    time.Date(2021, 1, 1, 23, 0, 0, 0, time.UTC),
		URL:     "https://pypi.org/project/lmtpd/",
	}
	want := `- <a href="https://pypi.org/project/lmtpd/">lmtpd</a> 7.0.0 released on 2021-01-01`
	if got := ReleaseLine(r); got != want {
		t.Fatalf("ReleaseLine =\n%s\nwant\n%s", got, want)
	}
	r.URL = ""
	if got := ReleaseLine(r); got != "- lmtpd 7.0.0 released on 2021-01-01" {
		t.Fatalf("ReleaseLine without url = %q", got)
	}
}

func TestPostLine(t *testing.T) {
	p := model.Post{Type: "art", Title: "Sketch", Date: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), URL: "https://example.com/art/sketch"}
	want := `- (art) <a href="https://example.com/art/sketch">Sketch</a> posted on 2021-06-01`
	if got := PostLine(p); got != want {
		t.Fatalf("PostLine = %q, want %q", got, want)
	}
	p.URL = ""
	if got := PostLine(p); got != "- (art) Sketch posted on 2021-06-01" {
		t.Fatalf("PostLine without url = %q", got)
	}
}

func TestBlocksJoinWithNewlines(t *testing.T) {
	d := time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC)
	block := ReleaseBlock([]model.Release{{Name: "a", Version: "1", Date: d}, {Name: "b", Version: "2", Date: d}})
	if block != "- a 1 released on 2020-02-02\n- b 2 released on 2020-02-02" {
		t.Fatalf("ReleaseBlock = %q", block)
	}
	if PostBlock(nil) != "" {
		t.Fatalf("empty PostBlock should be empty")
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	out, err := Render(nil, Data{LatestReleases: "- R", TheBlog: "- B"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.HasPrefix(out, "\n# moggers87\n") {
		t.Errorf("unexpected header: %q", out[:20])
	}
	rel := strings.Index(out, "## Latest releases\n\n- R\n")
	blog := strings.Index(out, "- B\n\n## Elsewhere")
	if rel < 0 || blog < 0 || rel > blog {
		t.Fatalf("sections misplaced:\n%s", out)
	}
	if !strings.HasSuffix(out, "(https://mastodon.xyz/moggers87)\n\n") {
		t.Errorf("unexpected footer: %q", out[len(out)-30:])
	}
}

func TestLoadTemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.tmpl")
	if err := os.WriteFile(path, []byte("R:{{.LatestReleases}}|B:{{.TheBlog}}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate error: %v", err)
	}
	out, err := Render(tpl, Data{LatestReleases: "x", TheBlog: "y"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out != "R:x|B:y" {
		t.Fatalf("Render = %q", out)
	}
	if tpl, err := LoadTemplate(""); err != nil || tpl != DefaultTemplate() {
		t.Fatalf("empty path should return the embedded template")
	}
	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileTemplateMatchesEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.tmpl")
	if err := os.WriteFile(path, []byte(readmeTpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate error: %v", err)
	}
	d := Data{LatestReleases: "- R", TheBlog: "- B"}
	fromFile, err := Render(tpl, d)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	embedded, err := Render(nil, d)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if fromFile != embedded {
		t.Fatalf("file template rendered differently:\n%s\nvs\n%s", fromFile, embedded)
	}

	bad := filepath.Join(t.TempDir(), "bad.tmpl")
	if err := os.WriteFile(bad, []byte("{{.Releases}}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	tpl, err = LoadTemplate(bad)
	if err != nil {
		t.Fatalf("LoadTemplate error: %v", err)
	}
	if _, err := Render(tpl, d); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
