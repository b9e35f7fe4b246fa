package engine

import (
	"context"

	"github.com/law-makers/jobhub/pkg/models"
)

// Fetcher is the interface that all fetch strategies must implement
type Fetcher interface {
	// Fetch retrieves the raw document at req.URL
	Fetch(ctx context.Context, req models.FetchRequest) (*models.Page, error)

	// Name returns the name of the fetcher implementation
	Name() string
}

// FetcherFunc adapts a plain function to the Fetcher interface
type FetcherFunc func(ctx context.Context, req models.FetchRequest) (*models.Page, error)

// Fetch calls f(ctx, req)
func (f FetcherFunc) Fetch(ctx context.Context, req models.FetchRequest) (*models.Page, error) {
	return f(ctx, req)
}

// Name returns a fixed name for function fetchers
func (f FetcherFunc) Name() string {
	return "FuncFetcher"
}
