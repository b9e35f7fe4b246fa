package urlutil

import (
	"net/url"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "#", "/jobs/1"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	cases := map[string]string{
		"/jobs/1":             "https://example.com/jobs/1",
		"view/2":              "https://example.com/list/view/2",
		"https://other.org/x": "https://other.org/x",
	}
	for href, want := range cases {
		if got := ResolveURL("https://example.com/list/", href); got != want {
			t.Fatalf("ResolveURL(%q) = %q, want %q", href, got, want)
		}
	}
}

func TestOrigin(t *testing.T) {
	if got := Origin("https://www.linkedin.com/jobs/search?x=1"); got != "https://www.linkedin.com" {
		t.Fatalf("unexpected origin %q", got)
	}
	if got := Origin("not a url"); got != "" {
		t.Fatalf("expected empty origin, got %q", got)
	}
}

func TestBuild(t *testing.T) {
	q := url.Values{}
	q.Set("q", "go developer")
	q.Set("start", "10")
	got := Build("https://in.indeed.com/", "/jobs", q)
	want := "https://in.indeed.com/jobs?q=go+developer&start=10"
	if got != want {
		t.Fatalf("Build = %q, want %q", got, want)
	}
	if got := Build("https://x.com", "/api", nil); got != "https://x.com/api" {
		t.Fatalf("Build without query = %q", got)
	}
}

func TestSlug(t *testing.T) {
	if got := Slug("  Python  Developer "); got != "python-developer" {
		t.Fatalf("Slug = %q", got)
	}
}
