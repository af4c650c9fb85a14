// Package zimas implements the browser-driven scraper for the LA City
// zoning portal. The portal has no documented API; the only integration is
// simulated user interaction through chromedp.
package zimas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/addr"
)

const (
	houseSelector  = `input[id*='House' i], input[title*='House' i]`
	streetSelector = `input[id*='Street' i], input[title*='Street' i]`
	searchButton   = `#btnSearchGo`
	resultLink     = `table td a`

	networkQuietFor        = 500 * time.Millisecond
	navigationQuietTimeout = 15 * time.Second
	searchQuietTimeout     = 10 * time.Second
	sectionQuietTimeout    = 8 * time.Second
	tabTimeout             = 5 * time.Second
	termsAttemptTimeout    = 2 * time.Second
)

var termsSelectors = []string{
	`input[value*='Accept' i]`,
	`input[type='button'][value*='accept' i]`,
	`button[id*='Accept' i]`,
}

// Options configure a portal scraper.
type Options struct {
	URL      string
	Timeout  time.Duration
	Headless bool
	SlowMo   time.Duration // extra pause after each page action, for watching visible runs
	Layout   *Layout
}

type Scraper struct {
	opts Options
}

// ScrapeError is the descriptor for a failed session. It echoes the input
// back so a failure is debuggable without the browser.
type ScrapeError struct {
	Debug entity.ScrapeDebug
	Err   error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("zimas scrape (house=%s street=%q): %v", e.Debug.HouseNumber, e.Debug.StreetNameInput, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScraper creates a portal scraper. A nil layout falls back to the
// built-in default; either way the layout is validated up front.
func NewScraper(opts Options) (repository.PortalRepository, error) {
	if opts.Layout == nil {
		opts.Layout = DefaultLayout()
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	return &Scraper{opts: opts}, nil
}

// Scrape drives one portal session: navigate, dismiss the consent dialog,
// search the address, open the first result if a results table renders, then
// visit every layout section. A section that cannot be located degrades to a
// SectionErrors entry while the remaining sections still run; a failure
// before the sections are reached aborts the session. One attempt per call.
// The browser context is torn down unconditionally on both paths.
func (s *Scraper) Scrape(ctx context.Context, houseNumber, streetName string) (*entity.ScrapedZoningRecord, error) {
	debug := entity.ScrapeDebug{
		SessionID:       uuid.NewString(),
		HouseNumber:     strings.TrimSpace(houseNumber),
		StreetNameInput: streetName,
		StreetNameClean: addr.CleanStreetName(streetName),
	}
	log := slog.With("session_id", debug.SessionID, "house_number", debug.HouseNumber, "street_name", debug.StreetNameClean)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(`Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36`),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, s.opts.Timeout)
	defer timeoutCancel()

	watcher := newNetworkWatcher(taskCtx)

	record := &entity.ScrapedZoningRecord{
		HouseNumber:   debug.HouseNumber,
		StreetName:    streetName,
		Sections:      make(map[string]map[string]string),
		SectionErrors: make(map[string]string),
		Debug:         debug,
	}

	if err := s.navigateAndSearch(taskCtx, watcher, debug, log); err != nil {
		return nil, &ScrapeError{Debug: debug, Err: err}
	}

	for _, section := range s.opts.Layout.Sections {
		data, err := s.scrapeSection(taskCtx, watcher, section)
		if err != nil {
			record.Sections[section.Name] = map[string]string{}
			record.SectionErrors[section.Name] = err.Error()
			log.Warn("Section scrape failed", "section", section.Name, "error", err)
			continue
		}
		record.Sections[section.Name] = data
		log.Debug("Section scraped", "section", section.Name, "rows", len(data))
	}

	record.Attributes = s.opts.Layout.Remap(record.Sections)
	return record, nil
}

func (s *Scraper) navigateAndSearch(ctx context.Context, watcher *networkWatcher, debug entity.ScrapeDebug, log *slog.Logger) error {
	if err := chromedp.Run(ctx,
		network.Enable(),
		chromedp.Navigate(s.opts.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate portal: %w", err)
	}
	watcher.waitQuiet(ctx, networkQuietFor, navigationQuietTimeout)

	s.dismissTerms(ctx, log)
	s.pause(ctx)

	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(houseSelector, chromedp.ByQuery),
		chromedp.SendKeys(houseSelector, debug.HouseNumber, chromedp.ByQuery),
		chromedp.SendKeys(streetSelector, debug.StreetNameClean, chromedp.ByQuery),
		chromedp.Click(searchButton, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}
	watcher.waitQuiet(ctx, networkQuietFor, searchQuietTimeout)
	s.pause(ctx)

	// A multi-match search renders a results table; click through its first
	// row. A single match navigates directly, leaving no rows to probe.
	var links []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(resultLink, &links, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return fmt.Errorf("probe result rows: %w", err)
	}
	if len(links) > 0 {
		if err := chromedp.Run(ctx, chromedp.MouseClickNode(links[0])); err != nil {
			return fmt.Errorf("open first result: %w", err)
		}
		watcher.waitQuiet(ctx, networkQuietFor, searchQuietTimeout)
		s.pause(ctx)
	}
	return nil
}

// dismissTerms clears the consent dialog best-effort: a short visible-click
// attempt per known selector, then a page-script fallback. Failure here is
// never fatal; the search proceeds regardless.
func (s *Scraper) dismissTerms(ctx context.Context, log *slog.Logger) {
	const checkDoNotShow = `(() => {
		const cb = document.getElementById('ckDoNotShow') || document.querySelector('input[type="checkbox"]');
		if (cb) cb.checked = true;
	})()`

	for _, sel := range termsSelectors {
		attempt, cancel := context.WithTimeout(ctx, termsAttemptTimeout)
		err := chromedp.Run(attempt,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Evaluate(checkDoNotShow, nil),
			chromedp.Click(sel, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			return
		}
	}

	const fallback = `(() => {
		const cb = document.getElementById('ckDoNotShow') || document.querySelector('input[type="checkbox"]');
		if (cb) cb.checked = true;
		const btn = Array.from(document.querySelectorAll('input, button'))
			.find(el => /accept/i.test(el.value || el.textContent));
		if (btn) btn.click();
	})()`
	if err := chromedp.Run(ctx, chromedp.Evaluate(fallback, nil)); err != nil {
		log.Debug("Terms dialog script fallback failed", "error", err)
	}
}

// scrapeSection runs the explicit locate -> activate -> extract sequence for
// one section.
func (s *Scraper) scrapeSection(ctx context.Context, watcher *networkWatcher, spec SectionSpec) (map[string]string, error) {
	if err := s.activateTab(ctx, spec.TabText); err != nil {
		return nil, fmt.Errorf("locate tab %q: %w", spec.TabText, err)
	}
	watcher.waitQuiet(ctx, networkQuietFor, sectionQuietTimeout)
	s.pause(ctx)

	snapshots, err := frameSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot frames: %w", err)
	}
	data, err := ExtractRows(snapshots[ChooseFrame(snapshots, spec.Keywords)])
	if err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}
	return data, nil
}

// activateTab finds a visible clickable element whose text contains the tab
// label and clicks it, polling until one appears or the tab timeout elapses.
func (s *Scraper) activateTab(ctx context.Context, tabText string) error {
	quoted, _ := json.Marshal(strings.ToLower(tabText))
	expr := fmt.Sprintf(`(() => {
		const q = %s;
		for (const el of document.querySelectorAll('a, button, span, div, td')) {
			const t = ((el.textContent || el.value || '') + '').trim().toLowerCase();
			if (t && t.includes(q) && el.offsetParent !== null) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, quoted)
	return pollUntil(ctx, expr, tabTimeout)
}

// frameSnapshots returns the outer HTML of the main document followed by
// every same-origin child frame. Cross-origin frames are skipped; their
// content is not reachable from page script.
func frameSnapshots(ctx context.Context) ([]string, error) {
	const expr = `(() => {
		const out = [document.documentElement.outerHTML];
		for (const f of document.querySelectorAll('iframe, frame')) {
			try { out.push(f.contentDocument.documentElement.outerHTML); } catch (e) {}
		}
		return out;
	})()`
	var snapshots []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &snapshots)); err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, errors.New("no frame content available")
	}
	return snapshots, nil
}

func (s *Scraper) pause(ctx context.Context) {
	if s.opts.SlowMo <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.opts.SlowMo):
	}
}
