// internal/engine/dynamic/fetcher_test.go
package dynamic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/law-makers/jobhub/internal/ratelimit"
	"github.com/law-makers/jobhub/pkg/models"
)

func requireChrome(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping headless browser test in short mode")
	}
	if FindChrome("") == "" {
		t.Skip("chrome not installed")
	}
}

func TestFetcher_Fetch_RendersJavaScript(t *testing.T) {
	requireChrome(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Jobs</title></head>
<body>
<ul id="results"></ul>
<script>
document.getElementById("results").innerHTML = '<li class="card">Rendered Go Job</li>';
</script>
</body></html>`))
	}))
	defer server.Close()

	launcher := NewLauncher(LauncherOptions{Headless: true, UserAgent: "TestFetcher/1.0"})
	f := New(launcher, ratelimit.Unlimited{}, 30*time.Second)

	page, err := f.Fetch(context.Background(), models.FetchRequest{URL: server.URL, WaitSelector: "li.card"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(string(page.Body), "Rendered Go Job") {
		t.Errorf("Expected rendered card in body, got %q", string(page.Body))
	}
	if launcher.Active() != 0 {
		t.Errorf("Expected browser to be released, %d still active", launcher.Active())
	}
}

func TestLauncher_Do_ReleasesOnError(t *testing.T) {
	launcher := NewLauncher(LauncherOptions{Headless: true})
	boom := errors.New("extraction failed")

	err := launcher.Do(context.Background(), time.Second, func(ctx context.Context) error {
		if launcher.Active() != 1 {
			t.Errorf("Expected 1 active browser inside Do, got %d", launcher.Active())
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected the task error to be returned, got %v", err)
	}
	if launcher.Active() != 0 {
		t.Errorf("Expected browser to be released after error, %d still active", launcher.Active())
	}
}

func TestLauncher_Do_ReleasesOnPanic(t *testing.T) {
	launcher := NewLauncher(LauncherOptions{Headless: true})

	err := launcher.Do(context.Background(), time.Second, func(ctx context.Context) error {
		panic("selector engine exploded")
	})
	if err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Errorf("Expected panic to be converted to an error, got %v", err)
	}
	if launcher.Active() != 0 {
		t.Errorf("Expected browser to be released after panic, %d still active", launcher.Active())
	}
}

func TestFetcher_Name(t *testing.T) {
	f := New(NewLauncher(LauncherOptions{}), nil, time.Second)
	if f.Name() != "RenderedFetcher" {
		t.Errorf("Expected name 'RenderedFetcher', got '%s'", f.Name())
	}
}
