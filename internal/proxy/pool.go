package proxy

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// failureCooldown is how long a proxy is skipped after a failed fetch
const failureCooldown = 5 * time.Minute

// Pool rotates outbound fetches across a list of proxies, skipping those that
// failed recently.
type Pool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
	now     func() time.Time
}

// NewPool creates a new Pool. Empty entries are ignored.
func NewPool(proxies []string) *Pool {
	clean := make([]string, 0, len(proxies))
	for _, p := range proxies {
		if p != "" {
			clean = append(clean, p)
		}
	}
	return &Pool{
		proxies: clean,
		failed:  make(map[string]time.Time),
		now:     time.Now,
	}
}

// Len returns the number of configured proxies
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// Next returns the next healthy proxy, or "" when none are configured.
// If every proxy failed recently the next one in rotation is returned anyway.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	for i := 0; i < len(p.proxies); i++ {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy]; ok {
			if p.now().Sub(failTime) < failureCooldown {
				continue
			}
			delete(p.failed, proxy)
		}
		return proxy
	}

	proxy := p.proxies[p.index]
	p.index = (p.index + 1) % len(p.proxies)
	return proxy
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *Pool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = p.now()
	log.Debug().Str("proxy", proxy).Msg("Proxy marked as failed")
}

// MarkHealthy clears the failure status of a proxy
func (p *Pool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}
