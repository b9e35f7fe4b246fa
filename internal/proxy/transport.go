package proxy

import (
	"net/http"
	"net/url"
	"sync"
)

// Transport is an http.RoundTripper that sends each request through the
// next proxy of a Pool and reports the outcome back to it. A transport error
// marks the proxy failed; any response marks it healthy.
type Transport struct {
	pool *Pool
	base *http.Transport

	mu     sync.Mutex
	byHost map[string]*http.Transport
}

// NewTransport wraps base. With an empty pool requests go through base
// unchanged.
func NewTransport(pool *Pool, base *http.Transport) *Transport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &Transport{
		pool:   pool,
		base:   base,
		byHost: make(map[string]*http.Transport),
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.pool.Len() == 0 {
		return t.base.RoundTrip(req)
	}

	proxy := t.pool.Next()
	rt, err := t.transportFor(proxy)
	if err != nil {
		t.pool.MarkFailed(proxy)
		return nil, err
	}

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.pool.MarkFailed(proxy)
		return nil, err
	}
	t.pool.MarkHealthy(proxy)
	return resp, nil
}

// CloseIdleConnections closes idle connections on every proxied transport
func (t *Transport) CloseIdleConnections() {
	t.base.CloseIdleConnections()
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, rt := range t.byHost {
		rt.CloseIdleConnections()
	}
}

func (t *Transport) transportFor(proxy string) (*http.Transport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rt, ok := t.byHost[proxy]; ok {
		return rt, nil
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return nil, err
	}
	rt := t.base.Clone()
	rt.Proxy = http.ProxyURL(u)
	t.byHost[proxy] = rt
	return rt, nil
}
