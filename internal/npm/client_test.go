package npm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLatestUsesDistTag(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"name": "smallquery",
			"dist-tags": {"latest": "2.0.1", "next": "3.0.0-beta"},
			"time": {
				"created": "2019-01-01T00:00:00.000Z",
				"2.0.1": "2020-03-14T15:09:26.535Z",
				"3.0.0-beta": "2021-01-01T00:00:00.000Z"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, []string{"smallquery"}, "", srv.Client())
	if got := c.Targets(); len(got) != 1 || got[0] != "smallquery" {
		t.Fatalf("Targets = %v", got)
	}
	rels, err := c.Fetch(context.Background(), "smallquery")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotPath != "/smallquery" {
		t.Errorf("path = %q", gotPath)
	}
	if len(rels) != 1 {
		t.Fatalf("len(releases) = %d, want 1", len(rels))
	}
	r := rels[0]
	if r.Version != "2.0.1" {
		t.Errorf("version = %q, want 2.0.1", r.Version)
	}
	if r.URL != "https://www.npmjs.com/package/smallquery" {
		t.Errorf("url = %q", r.URL)
	}
	want := time.Date(2020, 3, 14, 15, 9, 26, 535000000, time.UTC)
	if !r.Date.Equal(want) {
		t.Errorf("date = %s, want %s", r.Date, want)
	}
}

func TestConvertMissingTime(t *testing.T) {
	doc := packageDoc{
		Name:     "smallquery",
		DistTags: map[string]string{"latest": "1.0.0"},
		Time:     map[string]string{},
	}
	if _, err := convertPackage("smallquery", doc); err == nil {
		t.Fatalf("expected error when publish time is missing")
	}
}

func TestConvertMissingLatest(t *testing.T) {
	if _, err := convertPackage("smallquery", packageDoc{Name: "smallquery"}); err == nil {
		t.Fatalf("expected error without latest dist-tag")
	}
}

func TestLatestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil, "", srv.Client())
	if _, err := c.Latest(context.Background(), "smallquery"); err == nil {
		t.Fatalf("expected error for 502")
	}
}
