package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
)

// Renderer returns the HTML of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// NewHTTPClient returns the resty client shared by the resolver and the
// HTTP renderer.
func NewHTTPClient(timeout time.Duration, userAgent string) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	return c
}

// HTTPRenderer fetches the page without running scripts. It works for pages
// that ship the game-log table in the initial HTML.
type HTTPRenderer struct {
	Client *resty.Client
}

func (r HTTPRenderer) Render(ctx context.Context, url string) (string, error) {
	client := r.Client
	if client == nil {
		client = resty.New()
	}
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: http %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

// ChromeRenderer loads the page in headless Chrome and waits Settle for the
// table to be drawn.
type ChromeRenderer struct {
	Settle   time.Duration
	ExecPath string
}

func (r ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	settle := r.Settle
	if settle <= 0 {
		settle = 2 * time.Second
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}
