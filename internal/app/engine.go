package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/vidyasagar/swb/internal/browser"
	"github.com/vidyasagar/swb/internal/chrome"
)

// Messages the engine and dispatcher push into the bubbletea loop.
type (
	// loadStartedMsg flips the status bar into its loading state.
	loadStartedMsg struct{ url string }
	// pagePaintedMsg carries a rendered page for the viewport.
	pagePaintedMsg struct {
		page *browser.RenderedPage
		url  string
	}
	// addressTextMsg reflects the current URL into the address bar.
	addressTextMsg struct{ url string }
	// showLoginMsg opens the sign-in dialog.
	showLoginMsg struct{}
	// notifyMsg surfaces a message on the status bar.
	notifyMsg struct{ text string }
)

const pageCacheSize = 50

// Engine is the rendering collaborator behind the chrome's Navigator,
// AddressSink, LoginPrompter and Notifier interfaces. Loads run in their
// own goroutines: the pipeline fetches, extracts and renders, paints the
// result into the TUI via program.Send, and reports completion back into
// the event queue as a page-changed or load-failed event.
//
// An in-flight load is never cancelled by a newer one. The newer load
// bumps the generation counter, so the stale completion skips its paint,
// but its completion event still enters the queue; the dispatcher
// swallows such duplicates through the history rules.
type Engine struct {
	queue    *chrome.Queue
	fetcher  *browser.Fetcher
	renderer *browser.Renderer
	cache    *lru.Cache[string, *browser.RenderedPage]
	search   string
	log      *zap.Logger

	mu        sync.Mutex
	send      func(tea.Msg)
	displayed string
	width     int
	gen       int
}

// NewEngine creates an engine feeding completions into queue.
// searchTemplate identifies fallback search-results pages so they get
// the structured extractor instead of readability.
func NewEngine(queue *chrome.Queue, searchTemplate string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	// Size and error are fixed; lru only errors on size <= 0.
	cache, _ := lru.New[string, *browser.RenderedPage](pageCacheSize)
	return &Engine{
		queue:    queue,
		fetcher:  browser.NewFetcher(),
		renderer: browser.NewRenderer(),
		cache:    cache,
		search:   searchTemplate,
		log:      log,
		width:    80,
	}
}

// SetSender wires the engine to the running bubbletea program. Must be
// called before the dispatcher starts.
func (e *Engine) SetSender(send func(tea.Msg)) {
	e.mu.Lock()
	e.send = send
	e.mu.Unlock()
}

// SetWidth updates the render width on window resizes.
func (e *Engine) SetWidth(w int) {
	e.mu.Lock()
	e.width = w
	e.mu.Unlock()
}

// Load starts displaying url. Cached pages paint immediately; the
// page-changed event still flows through the queue either way.
func (e *Engine) Load(url string) {
	e.load(url, true)
}

// Reload re-fetches the currently displayed page, bypassing the cache.
func (e *Engine) Reload() {
	e.mu.Lock()
	url := e.displayed
	e.mu.Unlock()
	if url != "" {
		e.load(url, false)
	}
}

// CurrentDisplayedURL returns the URL of the last painted page.
func (e *Engine) CurrentDisplayedURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayed
}

// SetText implements chrome.AddressSink.
func (e *Engine) SetText(url string) {
	e.post(addressTextMsg{url: url})
}

// ShowLogin implements chrome.LoginPrompter.
func (e *Engine) ShowLogin() {
	e.post(showLoginMsg{})
}

// Notify implements chrome.Notifier.
func (e *Engine) Notify(message string) {
	e.post(notifyMsg{text: message})
}

func (e *Engine) post(msg tea.Msg) {
	e.mu.Lock()
	send := e.send
	e.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (e *Engine) load(requested string, useCache bool) {
	normalized := browser.NormalizeURL(requested)

	e.mu.Lock()
	e.gen++
	gen := e.gen
	width := e.width
	e.mu.Unlock()

	if useCache {
		if page, ok := e.cache.Get(normalized); ok {
			e.mu.Lock()
			e.displayed = normalized
			e.mu.Unlock()
			e.post(pagePaintedMsg{page: page, url: normalized})
			e.queue.Enqueue(chrome.Event{Kind: chrome.KindPageChanged, URL: normalized})
			return
		}
	}

	e.post(loadStartedMsg{url: normalized})

	go func() {
		result, err := e.fetcher.Fetch(context.Background(), normalized)
		if err != nil {
			e.log.Warn("load failed", zap.String("url", requested), zap.Error(err))
			// Report the URL as requested: the dispatcher compares it
			// against the fallback it issued.
			e.queue.Enqueue(chrome.Event{Kind: chrome.KindLoadFailed, URL: requested})
			return
		}

		var page *browser.RenderedPage
		if browser.IsSearchResults(result.FinalURL, e.search) {
			results, perr := browser.ParseSearchResults(result.Body)
			if perr != nil {
				e.log.Warn("search extraction failed", zap.String("url", requested), zap.Error(perr))
				e.queue.Enqueue(chrome.Event{Kind: chrome.KindLoadFailed, URL: requested})
				return
			}
			page = browser.RenderSearchResults(result.FinalURL, results)
		} else {
			article, aerr := browser.Extract(result)
			if aerr != nil {
				e.log.Warn("extraction failed", zap.String("url", requested), zap.Error(aerr))
				e.queue.Enqueue(chrome.Event{Kind: chrome.KindLoadFailed, URL: requested})
				return
			}
			page = e.renderer.Render(article, width)
		}

		e.cache.Add(result.FinalURL, page)

		e.mu.Lock()
		stale := gen != e.gen
		if !stale {
			e.displayed = result.FinalURL
		}
		e.mu.Unlock()

		if !stale {
			e.post(pagePaintedMsg{page: page, url: result.FinalURL})
		}
		e.queue.Enqueue(chrome.Event{Kind: chrome.KindPageChanged, URL: result.FinalURL})
	}()
}
