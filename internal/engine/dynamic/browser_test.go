package dynamic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingProxies struct {
	mu      sync.Mutex
	proxies []string
	next    int
	failed  []string
	healthy []string
}

func (p *recordingProxies) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	proxy := p.proxies[p.next%len(p.proxies)]
	p.next++
	return proxy
}

func (p *recordingProxies) MarkFailed(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = append(p.failed, proxy)
}

func (p *recordingProxies) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = append(p.healthy, proxy)
}

// The callbacks below never run chromedp actions, so no browser is started
func TestLauncher_Do_RotatesAndReportsProxies(t *testing.T) {
	pool := &recordingProxies{proxies: []string{"http://p1:3128", "http://p2:3128"}}
	l := NewLauncher(LauncherOptions{Headless: true, Proxies: pool})

	navErr := errors.New("navigation failed: net::ERR_PROXY_CONNECTION_FAILED")
	if err := l.Do(context.Background(), time.Second, func(context.Context) error { return navErr }); !errors.Is(err, navErr) {
		t.Fatalf("Expected navigation error, got %v", err)
	}
	if err := l.Do(context.Background(), time.Second, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if len(pool.failed) != 1 || pool.failed[0] != "http://p1:3128" {
		t.Errorf("Expected p1 marked failed, got %v", pool.failed)
	}
	if len(pool.healthy) != 1 || pool.healthy[0] != "http://p2:3128" {
		t.Errorf("Expected p2 marked healthy, got %v", pool.healthy)
	}
	if l.Active() != 0 {
		t.Errorf("Expected no active browsers, got %d", l.Active())
	}
}

func TestLauncher_Do_CancellationNotBlamedOnProxy(t *testing.T) {
	pool := &recordingProxies{proxies: []string{"http://p1:3128"}}
	l := NewLauncher(LauncherOptions{Proxies: pool})

	_ = l.Do(context.Background(), time.Second, func(context.Context) error { return context.Canceled })

	if len(pool.failed) != 0 || len(pool.healthy) != 0 {
		t.Errorf("Expected no proxy report on cancellation, got failed=%v healthy=%v", pool.failed, pool.healthy)
	}
}

func TestLauncher_Do_WithoutPool(t *testing.T) {
	l := NewLauncher(LauncherOptions{})
	if err := l.Do(context.Background(), time.Second, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Expected success without proxies, got %v", err)
	}
}
