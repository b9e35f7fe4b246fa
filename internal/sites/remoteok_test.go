package sites

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/law-makers/jobhub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteOKFeed(t *testing.T, postings ...map[string]any) string {
	t.Helper()
	items := []any{map[string]any{"legal": "API Terms of Service"}}
	for _, p := range postings {
		items = append(items, p)
	}
	b, err := json.Marshal(items)
	require.NoError(t, err)
	return string(b)
}

func TestRemoteOK_FiltersAndFormats(t *testing.T) {
	feed := remoteOKFeed(t,
		map[string]any{
			"id": "1", "position": "Backend Engineer", "company": "Acme",
			"location": "Worldwide", "date": "2025-08-21T16:00:00+00:00",
			"url": "https://remoteok.com/remote-jobs/1", "tags": []string{"go", "aws"},
			"description": "<p>We love <b>Python</b></p>", "salary_min": 90000, "salary_max": 120000,
		},
		map[string]any{
			"id": 2, "position": "Designer", "company": "Globex",
			"location": "Europe", "date": "2025-08-20T10:00:00Z",
			"url": "/remote-jobs/2", "tags": []string{"figma"},
		},
		map[string]any{
			"id": 3, "position": "Python Developer", "company": "Initech",
			"location": "USA", "date": "",
		},
	)
	srv := newFixtureServer(t, http.StatusOK, "application/json", feed)
	a := NewRemoteOK(staticFetcher(srv.Server), 0, srv.URL)

	jobs, err := a.Search(context.Background(), models.SearchRequest{Query: "python"})
	require.NoError(t, err)
	require.Len(t, jobs, 2, "metadata element and non-matching postings must be excluded")

	assert.Equal(t, "Backend Engineer", jobs[0][models.FieldTitle])
	assert.Equal(t, "21 Aug 2025, 04:00 PM", jobs[0][models.FieldPosted])
	assert.Equal(t, "go, aws", jobs[0][models.FieldTags])
	assert.Equal(t, "$90000 - $120000", jobs[0][models.FieldSalary])
	assert.Equal(t, "RemoteOK", jobs[0][models.FieldSource])

	assert.Equal(t, "Python Developer", jobs[1][models.FieldTitle])
	assert.Equal(t, models.Unknown, jobs[1][models.FieldPosted])
	assert.Equal(t, srv.URL, jobs[1][models.FieldURL])
	assert.Equal(t, "/api?tags=python", srv.lastRequest())

	byLocation, err := a.Search(context.Background(), models.SearchRequest{Query: "", Location: "europe"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, srv.URL+"/remote-jobs/2", byLocation[0][models.FieldURL])
	assert.Equal(t, "20 Aug 2025, 10:00 AM", byLocation[0][models.FieldPosted])
}

func TestRemoteOK_CrawlPaginatesAfterFiltering(t *testing.T) {
	var postings []map[string]any
	for i := 0; i < 60; i++ {
		postings = append(postings, map[string]any{
			"id": i, "position": fmt.Sprintf("Python Job %d", i), "company": "Acme",
			"url": fmt.Sprintf("https://remoteok.com/remote-jobs/%d", i),
		})
		postings = append(postings, map[string]any{
			"id": 1000 + i, "position": "Rust Job", "company": "Other",
		})
	}
	srv := newFixtureServer(t, http.StatusOK, "application/json", remoteOKFeed(t, postings...))
	a := NewRemoteOK(staticFetcher(srv.Server), 25, srv.URL)

	jobs, err := a.Crawl(context.Background(), "python", "", 25, 25)
	require.NoError(t, err)
	require.Len(t, jobs, 25)
	assert.Equal(t, "Python Job 25", jobs[0][models.FieldTitle])
	assert.Equal(t, "Python Job 49", jobs[24][models.FieldTitle])

	third, err := a.Search(context.Background(), models.SearchRequest{Query: "python", Page: 3})
	require.NoError(t, err)
	assert.Len(t, third, 10)

	beyond, err := a.Crawl(context.Background(), "python", "", 100, 25)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestRemoteOK_BadJSON(t *testing.T) {
	srv := newFixtureServer(t, http.StatusOK, "application/json", "<html>not json</html>")
	a := NewRemoteOK(staticFetcher(srv.Server), 0, srv.URL)

	jobs, err := a.Search(context.Background(), models.SearchRequest{Query: "go"})
	assert.Error(t, err)
	assert.Empty(t, jobs)
}

func TestRemoteOK_QueryWordsBecomeTags(t *testing.T) {
	feed := remoteOKFeed(t,
		map[string]any{"id": 1, "position": "Python Developer", "company": "Acme", "url": "/remote-jobs/1"},
		map[string]any{"id": 2, "position": "Python Tester", "company": "Globex", "url": "/remote-jobs/2"},
	)
	srv := newFixtureServer(t, http.StatusOK, "application/json", feed)
	a := NewRemoteOK(staticFetcher(srv.Server), 0, srv.URL)

	jobs, err := a.Search(context.Background(), models.SearchRequest{Query: "python developer"})
	require.NoError(t, err)
	assert.Equal(t, "/api?tags=python,developer", srv.lastRequest())
	require.Len(t, jobs, 1)
	assert.Equal(t, "Python Developer", jobs[0][models.FieldTitle])

	assert.Equal(t, srv.URL+"/api", a.FeedURL("   "))
	assert.Equal(t, srv.URL+"/api?tags=c%2B%2B,qt", a.FeedURL("c++ qt"))
}

func TestRemoteOK_PageBeyondRangeIsEmpty(t *testing.T) {
	var postings []map[string]any
	for i := 0; i < 30; i++ {
		postings = append(postings, map[string]any{"id": i, "position": fmt.Sprintf("Python Job %d", i), "company": "Acme"})
	}
	srv := newFixtureServer(t, http.StatusOK, "application/json", remoteOKFeed(t, postings...))
	a := NewRemoteOK(staticFetcher(srv.Server), 25, srv.URL)

	jobs, err := a.Search(context.Background(), models.SearchRequest{Query: "python", Page: math.MaxInt/25 + 2})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
