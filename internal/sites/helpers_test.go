package sites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/law-makers/jobhub/internal/engine"
	"github.com/law-makers/jobhub/internal/engine/static"
	"github.com/law-makers/jobhub/internal/retry"
	"github.com/law-makers/jobhub/pkg/models"
)

// fixtureServer serves body at every path and records the request URIs
type fixtureServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []string
}

func newFixtureServer(t *testing.T, status int, contentType, body string) *fixtureServer {
	t.Helper()
	fs := &fixtureServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, r.URL.RequestURI())
		fs.mu.Unlock()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fixtureServer) lastRequest() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return ""
	}
	return fs.requests[len(fs.requests)-1]
}

func staticFetcher(srv *httptest.Server) engine.Fetcher {
	return static.New(nil, srv.Client(), retry.DefaultConfig(), 5*time.Second, "jobhub-test")
}

// recordingFetcher answers every request with body, or with err when set,
// and stores the request in *last.
func recordingFetcher(body []byte, err error, last *models.FetchRequest) engine.Fetcher {
	return engine.FetcherFunc(func(_ context.Context, req models.FetchRequest) (*models.Page, error) {
		*last = req
		if err != nil {
			return nil, err
		}
		return &models.Page{URL: req.URL, StatusCode: http.StatusOK, Body: body, Fetcher: "FuncFetcher"}, nil
	})
}
