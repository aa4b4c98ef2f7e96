package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"campaignpulse/internal/infrastructure"
)

// Defaults for Options.
const (
	DefaultTimeout = 60 * time.Second
	DefaultSettle  = 1500 * time.Millisecond
	DefaultReady   = "main"
)

// Options controls how the page is captured.
type Options struct {
	// Timeout bounds the whole capture, browser start included.
	Timeout time.Duration
	// Settle is waited after the page is ready so chart animations finish.
	Settle time.Duration
	// ReadySelector must be visible before printing.
	ReadySelector string
	// Landscape prints in landscape orientation.
	Landscape bool
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
}

// Snapshotter prints the dashboard page to PDF with headless Chrome.
type Snapshotter struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Snapshotter. Zero option values take the defaults.
func New(opts Options, logger *slog.Logger) *Snapshotter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	} else if opts.Settle == 0 {
		opts.Settle = DefaultSettle
	}
	if opts.ReadySelector == "" {
		opts.ReadySelector = DefaultReady
	}
	return &Snapshotter{
		opts:   opts,
		logger: infrastructure.WithComponent(logger, "snapshot"),
	}
}

// newContext starts one headless browser with a single tab.
func (s *Snapshotter) newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1440, 1024),
	)
	if s.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			s.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

// PDF loads url and returns the printed page.
func (s *Snapshotter) PDF(ctx context.Context, url string) ([]byte, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancelTimeout()

	browserCtx, cancel := s.newContext(ctx)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(s.opts.ReadySelector, chromedp.ByQuery),
		chromedp.Sleep(s.opts.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(s.opts.Landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print %s: %w", url, err)
	}

	s.logger.InfoContext(ctx, "snapshot captured",
		slog.String("url", url),
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)))

	return pdf, nil
}

// Save prints url to the PDF file at path.
func (s *Snapshotter) Save(ctx context.Context, url, path string) error {
	pdf, err := s.PDF(ctx, url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
