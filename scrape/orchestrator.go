package scrape

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mstolarski/siteqa"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched in parallel.
const DefaultConcurrency = 3

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPageScraped
	ProgressPageFailed
	ProgressFinished
)

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Orchestrator runs the scrape workflow for one request: discover URLs,
// fetch and clean pages, persist session artifacts, and optionally run
// schema generation and extraction when the request has a purpose.
type Orchestrator struct {
	Sessions    siteqa.SessionService
	Sites       siteqa.SiteStore
	Discoverer  URLDiscoverer
	Fetcher     siteqa.Fetcher
	Cleaner     siteqa.Cleaner
	RateLimiter siteqa.DomainLimiter

	// Extractor is optional; when set and the request carries a
	// purpose, a schema is generated and applied to the scraped pages.
	Extractor siteqa.Extractor

	// Concurrency bounds parallel page fetches. Zero selects
	// DefaultConcurrency. Fetchers that report Serialized are always
	// driven by a single worker regardless of this setting.
	Concurrency int

	Logger *slog.Logger
}

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url      string
	rawHTML  string
	markdown string
	err      error
}

// Run executes the scrape for the request and returns the final
// session. Individual page failures do not abort the scrape; the
// session fails only when no page could be scraped at all.
func (o *Orchestrator) Run(ctx context.Context, req *siteqa.ScrapeRequest, progress ProgressFunc) (*siteqa.Session, error) {
	session, err := o.Sessions.CreateSession(ctx, req)
	if err != nil {
		return nil, err
	}
	emit := safeProgress(progress)

	if err := o.Sessions.UpdateStatus(ctx, session.ID, siteqa.StatusInProgress, ""); err != nil {
		return nil, err
	}

	urls, err := o.Discoverer.DiscoverURLs(ctx, req.URL, req.Mode)
	if err != nil {
		return o.fail(ctx, session.ID, "URL discovery failed: "+err.Error())
	}
	if len(urls) == 0 {
		return o.fail(ctx, session.ID, "no URLs discovered")
	}

	if err := o.Sessions.SaveSources(ctx, session.ID, urls); err != nil {
		return nil, err
	}
	_ = o.Sessions.UpdateProgress(ctx, session.ID, len(urls), 0)

	emit(ProgressEvent{Type: ProgressStarted, Total: len(urls)})

	results := o.scrapePages(ctx, session.ID, urls, emit)

	var rawPages []*siteqa.Page
	var mdPages []*siteqa.MarkdownPage
	for _, res := range results {
		if res.err != nil {
			continue
		}
		rawPages = append(rawPages, &siteqa.Page{URL: res.url, RawHTML: res.rawHTML})
		if res.markdown == "" {
			// No extractable content; the page is kept as raw HTML
			// but excluded from the markdown artifact.
			continue
		}
		mdPages = append(mdPages, &siteqa.MarkdownPage{
			PageURL:  res.url,
			PageName: siteqa.PageName(res.url),
			Markdown: res.markdown,
		})
	}

	if len(rawPages) == 0 {
		return o.fail(ctx, session.ID, "failed to scrape any pages")
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})

	if err := o.Sessions.SaveRawHTML(ctx, session.ID, rawPages); err != nil {
		return nil, err
	}

	if len(mdPages) > 0 {
		site := &siteqa.Site{
			Website:  siteqa.DomainOf(siteqa.NormalizeURL(req.URL)),
			SiteName: siteqa.HostOf(req.URL) + "__" + session.ID,
			Pages:    mdPages,
		}
		if _, err := o.Sites.SaveSite(ctx, session.ID, site); err != nil {
			return nil, err
		}

		o.extract(ctx, session.ID, req.Purpose, mdPages)
	}

	if err := o.Sessions.UpdateStatus(ctx, session.ID, siteqa.StatusCompleted, ""); err != nil {
		return nil, err
	}
	return o.Sessions.FindSessionByID(ctx, session.ID)
}

// scrapePages fetches and cleans all URLs with bounded parallelism.
func (o *Orchestrator) scrapePages(ctx context.Context, sessionID string, urls []string, emit ProgressFunc) []pageResult {
	concurrency := o.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if s, ok := o.Fetcher.(siteqa.Serialized); ok && s.Serialized() {
		concurrency = 1
	}

	results := make([]pageResult, len(urls))
	var mu sync.Mutex
	completed := 0
	scraped := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, url := range urls {
		g.Go(func() error {
			res := o.scrapePage(gctx, url)

			mu.Lock()
			results[i] = res
			completed++
			done := completed
			if res.err == nil {
				scraped++
				_ = o.Sessions.UpdateProgress(ctx, sessionID, len(urls), scraped)
			}
			mu.Unlock()

			if res.err != nil {
				o.logger().Warn("page failed", "url", url, "err", res.err)
				emit(ProgressEvent{Type: ProgressPageFailed, Completed: done, Total: len(urls), URL: url, Err: res.err})
			} else {
				emit(ProgressEvent{Type: ProgressPageScraped, Completed: done, Total: len(urls), URL: url})
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// scrapePage fetches one URL and cleans its HTML to markdown.
func (o *Orchestrator) scrapePage(ctx context.Context, url string) pageResult {
	res := pageResult{url: url}

	if o.RateLimiter != nil {
		if err := o.RateLimiter.Wait(ctx, siteqa.HostOf(url)); err != nil {
			res.err = err
			return res
		}
	}

	html, err := o.Fetcher.Fetch(ctx, url)
	if err != nil {
		res.err = err
		return res
	}
	res.rawHTML = html

	markdown, err := o.Cleaner.Clean(html)
	if err != nil {
		res.err = err
		return res
	}
	res.markdown = markdown

	return res
}

// extract runs the optional schema generation and extraction phase.
// Failures here are logged but never fail the session; the scraped
// content is already persisted.
func (o *Orchestrator) extract(ctx context.Context, sessionID, purpose string, pages []*siteqa.MarkdownPage) {
	if o.Extractor == nil || purpose == "" {
		return
	}

	schema, err := o.Extractor.GenerateSchema(ctx, purpose, pages[0].Markdown)
	if err != nil {
		o.logger().Warn("schema generation failed", "session", sessionID, "err", err)
		return
	}
	if err := o.Sessions.SaveSchema(ctx, sessionID, schema); err != nil {
		o.logger().Warn("saving schema failed", "session", sessionID, "err", err)
		return
	}

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(page.Markdown)
		sb.WriteString("\n\n")
	}
	data, err := o.Extractor.Extract(ctx, schema, sb.String())
	if err != nil {
		o.logger().Warn("extraction failed", "session", sessionID, "err", err)
		return
	}
	if err := o.Sessions.SaveExtracted(ctx, sessionID, data); err != nil {
		o.logger().Warn("saving extracted data failed", "session", sessionID, "err", err)
	}
}

// fail marks the session failed and returns its final state.
func (o *Orchestrator) fail(ctx context.Context, sessionID, message string) (*siteqa.Session, error) {
	if err := o.Sessions.UpdateStatus(ctx, sessionID, siteqa.StatusFailed, message); err != nil {
		return nil, err
	}
	return o.Sessions.FindSessionByID(ctx, sessionID)
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// safeProgress wraps the progress callback so a panicking callback
// cannot take down a scrape in flight.
func safeProgress(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(ProgressEvent) {}
	}
	return func(event ProgressEvent) {
		defer func() {
			_ = recover()
		}()
		progress(event)
	}
}
