package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestDomainLimiter_PerHostBuckets(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)

	if !dl.Allow("https://www.indeed.com/jobs?q=go") {
		t.Fatal("Expected first indeed request to be allowed")
	}
	if dl.Allow("https://indeed.com/jobs?q=rust") {
		t.Error("Expected second indeed request to be throttled (www. shares the bucket)")
	}
	if !dl.Allow("https://remoteok.com/api") {
		t.Error("Expected remoteok to have its own bucket")
	}
	if dl.Hosts() != 2 {
		t.Errorf("Expected 2 tracked hosts, got %d", dl.Hosts())
	}
}

func TestDomainLimiter_WaitHonoursContext(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)
	_ = dl.Allow("https://internshala.com/")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := dl.Wait(ctx, "https://internshala.com/internships/"); err == nil {
		t.Error("Expected Wait to fail when the context expires before a token is available")
	}
}

func TestDomainLimiter_InvalidURLPassesThrough(t *testing.T) {
	dl := NewDomainLimiter(1, 1)
	if err := dl.Wait(context.Background(), "://bad"); err != nil {
		t.Errorf("Expected invalid URL to pass through, got %v", err)
	}
}

func TestDomainLimiter_SetLimit(t *testing.T) {
	dl := NewDomainLimiter(0.001, 1)
	dl.SetLimit("www.timesjobs.com", 1000, 5)

	for i := 0; i < 5; i++ {
		if !dl.Allow("https://timesjobs.com/candidate/job-search.html") {
			t.Fatalf("Expected request %d to be allowed after raising the limit", i+1)
		}
	}
}
