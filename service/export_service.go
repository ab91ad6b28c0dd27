package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"pokedex-web/models"
	"pokedex-web/utils"
)

const exportTimeout = 30 * time.Second

// Common paths to check when no Chrome path is configured
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// ExportService renders the app's own pages through a headless browser
type ExportService struct {
	baseURL    string // Public base URL of this server (e.g. "http://localhost:8080")
	chromePath string
	logger     *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(baseURL, chromePath string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
		logger:     logger,
	}
}

// detectChromePath returns the configured path, then CHROME_PATH, then the first
// existing well-known location, or "" to let chromedp search on its own
func detectChromePath(configured string) string {
	if configured != "" {
		return configured
	}
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ListingURL returns the page rendered for a listing export
func (s *ExportService) ListingURL(filter models.QueryFilter) string {
	renderURL := s.baseURL + "/"
	if query := filter.Values().Encode(); query != "" {
		renderURL += "?" + query
	}
	return renderURL
}

// DetailURL returns the page rendered for a detail card export
func (s *ExportService) DetailURL(name string) string {
	return fmt.Sprintf("%s/pokemon/%s", s.baseURL, url.PathEscape(utils.NormalizeName(name)))
}

func (s *ExportService) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, exportTimeout)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
		cancelTimeout()
	}
}

// GenerateListingPDF prints the (optionally filtered) listing page as an A4 PDF
func (s *ExportService) GenerateListingPDF(ctx context.Context, filter models.QueryFilter) ([]byte, error) {
	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	renderURL := s.ListingURL(filter)
	s.logger.Info("exporting listing PDF", zap.String("url", renderURL))

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}

// GenerateDetailPNG captures the detail card of name as a PNG screenshot
func (s *ExportService) GenerateDetailPNG(ctx context.Context, name string) ([]byte, error) {
	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	renderURL := s.DetailURL(name)
	s.logger.Info("exporting detail card", zap.String("url", renderURL))

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(800, 1000),
		chromedp.Navigate(renderURL),
		chromedp.WaitVisible(".detail", chromedp.ByQuery),
		chromedp.Screenshot(".detail", &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return buf, nil
}
