// Package snapshot drives a headless browser over the dashboard and saves a
// full-page PNG of every route in every theme once its charts have drawn.
package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"housing-dashboard/config"
	"housing-dashboard/models"
	"housing-dashboard/pages"
	"housing-dashboard/utils"
)

// chartsDrawn is true once every chart container holds a rendered plot.
const chartsDrawn = `(function() {
	var charts = document.querySelectorAll('#page-content .chart');
	var drawn = document.querySelectorAll('#page-content .chart .main-svg');
	return charts.length === 0 || drawn.length >= charts.length;
})()`

// Target is one page to capture.
type Target struct {
	Path  string
	Theme models.Theme
}

// Targets crosses the navigation routes with both themes.
func Targets() []Target {
	var out []Target
	for _, link := range pages.Nav() {
		for _, theme := range []models.Theme{models.ThemeDark, models.ThemeLight} {
			out = append(out, Target{Path: link.Path, Theme: theme})
		}
	}
	return out
}

// URL is the address of the target on the dashboard at base.
func (t Target) URL(base string) string {
	q := url.Values{"theme": {string(t.Theme)}}
	return strings.TrimRight(base, "/") + t.Path + "?" + q.Encode()
}

// FileName names the screenshot of the target.
func (t Target) FileName() string {
	name := strings.Trim(t.Path, "/")
	if name == "" {
		name = "index"
	}
	name = strings.ReplaceAll(name, "/", "_")
	return fmt.Sprintf("%s-%s.png", name, t.Theme)
}

// Result is the outcome of one capture.
type Result struct {
	Target Target
	File   string
	Charts int
	Err    error
}

// Capturer orchestrates the browser session.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig

	mu      sync.Mutex
	results []Result
}

// New creates a ready-to-use Capturer.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture screenshots every target of the dashboard served at base into the
// snapshot directory. Duplicate targets are captured once. Failed targets
// are reported in their Result; the error is only for setup failures.
func (c *Capturer) Capture(ctx context.Context, base string, targets []Target) ([]Result, error) {
	if err := os.MkdirAll(c.cfg.SnapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	chromeBin := findChromeBinary(c.cfg.ChromeBin)
	c.logger.Info("[snapshot] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1600, 1000),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	defer cancelBrowser()

	// start the browser before fanning out so tabs share it
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	for _, target := range unique(base, targets) {
		target := target
		c.pool.Submit(func() {
			res := c.captureOne(browserCtx, base, target)
			if res.Err != nil {
				c.logger.Warn("[snapshot] %s (%s) failed: %v", target.Path, target.Theme, res.Err)
			} else {
				c.logger.Info("[snapshot] %s (%s) → %s, %d charts", target.Path, target.Theme, res.File, res.Charts)
			}
			c.mu.Lock()
			c.results = append(c.results, res)
			c.mu.Unlock()
		})
	}
	c.pool.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]Result(nil), c.results...)
	c.results = nil
	return out, nil
}

// unique drops targets resolving to an already listed URL.
func unique(base string, targets []Target) []Target {
	seen := make(map[string]bool, len(targets))
	out := make([]Target, 0, len(targets))
	for _, t := range targets {
		u := t.URL(base)
		if !seen[u] {
			seen[u] = true
			out = append(out, t)
		}
	}
	return out
}

func (c *Capturer) captureOne(browserCtx context.Context, base string, t Target) Result {
	res := Result{Target: t, File: filepath.Join(c.cfg.SnapshotDir, t.FileName())}

	res.Err = c.retry.Do(browserCtx, "snapshot "+t.Path, func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		var ready bool
		var charts int
		var png []byte
		err := chromedp.Run(ctx,
			chromedp.Navigate(t.URL(base)),
			chromedp.WaitVisible("#page-content", chromedp.ByQuery),
			chromedp.Poll(chartsDrawn, &ready, chromedp.WithPollingTimeout(30*time.Second)),
			chromedp.Evaluate(`document.querySelectorAll('#page-content .chart').length`, &charts),
			chromedp.FullScreenshot(&png, 100),
		)
		if err != nil {
			return fmt.Errorf("chromedp: %w", err)
		}
		res.Charts = charts
		return os.WriteFile(res.File, png, 0644)
	})
	return res
}

// findChromeBinary locates Chrome/Chromium. An explicit path wins.
func findChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
