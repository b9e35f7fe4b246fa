// internal/engine/dynamic/browser.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// LauncherOptions configures the headless browser launched for each fetch
type LauncherOptions struct {
	ChromePath string
	Headless   bool
	UserAgent  string
	// Proxies supplies one proxy per launch. Nil launches without a proxy.
	Proxies    ProxySource
	ExtraArgs  []chromedp.ExecAllocatorOption
}

// ProxySource hands out proxies and is told how each launch went
type ProxySource interface {
	Next() string
	MarkFailed(proxy string)
	MarkHealthy(proxy string)
}

// Launcher starts one headless Chrome per Do call and guarantees it is torn
// down when the call returns.
type Launcher struct {
	opts   LauncherOptions
	active atomic.Int64
}

// NewLauncher creates a Launcher. The Chrome binary is resolved lazily so that
// building the launcher never touches the filesystem.
func NewLauncher(opts LauncherOptions) *Launcher {
	return &Launcher{opts: opts}
}

// Active returns the number of browser processes currently held
func (l *Launcher) Active() int64 {
	return l.active.Load()
}

// allocatorOptions mirrors the flag set that keeps headless Chrome stable in containers
func (l *Launcher) allocatorOptions(proxyAddr string) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(l.opts.UserAgent),
	}

	if path := FindChrome(l.opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	if l.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if proxyAddr != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(proxyAddr))
	}

	return append(allocOpts, l.opts.ExtraArgs...)
}

// Do launches a browser, runs fn against a fresh tab and releases the tab,
// the browser process and the allocator on every exit path, including
// timeouts, navigation failures and panics inside fn.
func (l *Launcher) Do(ctx context.Context, timeout time.Duration, fn func(tabCtx context.Context) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	proxyAddr := l.nextProxy()

	// acquire
	baseCtx, baseCancel := context.WithTimeout(ctx, timeout)
	allocCtx, allocCancel := chromedp.NewExecAllocator(baseCtx, l.allocatorOptions(proxyAddr)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	l.active.Add(1)

	// release
	defer func() {
		tabCancel()
		allocCancel()
		baseCancel()
		l.active.Add(-1)
		log.Debug().Dur("held", time.Since(start)).Msg("Browser released")

		if r := recover(); r != nil {
			err = fmt.Errorf("browser task panicked: %v", r)
		}
		l.reportProxy(proxyAddr, err)
	}()

	log.Debug().Dur("elapsed_ms", time.Since(start)).Msg("Browser launched")

	// use
	return fn(tabCtx)
}

func (l *Launcher) nextProxy() string {
	if l.opts.Proxies == nil {
		return ""
	}
	return l.opts.Proxies.Next()
}

// reportProxy feeds the outcome of a launch back to the pool. A caller
// cancellation says nothing about the proxy and is not reported.
func (l *Launcher) reportProxy(proxyAddr string, err error) {
	if proxyAddr == "" || l.opts.Proxies == nil {
		return
	}
	switch {
	case err == nil:
		l.opts.Proxies.MarkHealthy(proxyAddr)
	case errors.Is(err, context.Canceled):
	default:
		log.Debug().Str("proxy", proxyAddr).Err(err).Msg("Browser fetch failed through proxy")
		l.opts.Proxies.MarkFailed(proxyAddr)
	}
}
