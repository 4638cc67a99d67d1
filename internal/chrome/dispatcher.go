package chrome

import (
	"context"

	"go.uber.org/zap"
)

// Navigator is the rendering engine as seen by the dispatcher. Load and
// Reload are fire-and-forget: completion comes back asynchronously as a
// KindPageChanged or KindLoadFailed event on the same queue.
type Navigator interface {
	Load(url string)
	Reload()
	CurrentDisplayedURL() string
}

// AddressSink reflects the current navigable URL to the user. It must
// not generate events of its own, or setting the text would feed back
// into the queue.
type AddressSink interface {
	SetText(url string)
}

// LoginPrompter opens the sign-in dialog. The dialog is an opaque modal
// with no chrome state behind it.
type LoginPrompter interface {
	ShowLogin()
}

// Notifier surfaces a failure of last resort to the user. In chrome
// scope it carries exactly one condition: the home location could not be
// resolved and the fallback chain has nowhere left to go.
type Notifier interface {
	Notify(message string)
}

// Sinks bundles the collaborator interfaces the dispatcher issues
// commands to.
type Sinks struct {
	Nav     Navigator
	Address AddressSink
	Login   LoginPrompter
	Notify  Notifier
}

// Dispatcher drains the event queue one event at a time and is the only
// goroutine that touches History and the fallback state. Every handler
// absorbs its own failures and returns the loop to idle; nothing
// propagates across the dispatch boundary.
type Dispatcher struct {
	queue   *Queue
	history *History
	search  string // fallback template with a SearchToken placeholder
	sinks   Sinks
	log     *zap.Logger

	// Substitute URL produced by the previous failure. Consumed by the
	// next KindLoadFailed; cleared once the chain ends at home.
	lastFallback string

	// Home resolution, swappable in tests.
	home func() (string, error)
}

// NewDispatcher creates a dispatcher whose history is seeded with
// startPage. searchTemplate is the configured search-engine URL carrying
// one SearchToken.
func NewDispatcher(queue *Queue, startPage, searchTemplate string, sinks Sinks, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		queue:   queue,
		history: NewHistory(startPage),
		search:  searchTemplate,
		sinks:   sinks,
		log:     log,
		home:    HomeURL,
	}
}

// History exposes the tracker for the dispatcher goroutine and tests.
// Other goroutines must not call into it.
func (d *Dispatcher) History() *History {
	return d.history
}

// Run issues the initial load of the seeded start page, then processes
// events in strict arrival order until ctx is cancelled. The initial
// load is programmatic, so the page change it produces is suppressed and
// the seed is not recorded twice.
func (d *Dispatcher) Run(ctx context.Context) {
	start := d.history.Current()
	d.history.Suppress()
	d.sinks.Address.SetText(start)
	d.sinks.Nav.Load(start)
	d.log.Info("session started", zap.String("start_page", start))

	for {
		ev, ok := d.queue.Next(ctx)
		if !ok {
			d.log.Info("dispatcher stopped")
			return
		}
		d.handle(ev)
	}
}

func (d *Dispatcher) handle(ev Event) {
	switch ev.Kind {
	case KindBackRequested:
		if url, ok := d.history.GoBack(); ok {
			d.log.Debug("back", zap.String("url", url))
			d.sinks.Address.SetText(url)
			d.sinks.Nav.Load(url)
		}

	case KindForwardRequested:
		if url, ok := d.history.GoForward(); ok {
			d.log.Debug("forward", zap.String("url", url))
			d.sinks.Address.SetText(url)
			d.sinks.Nav.Load(url)
		}

	case KindRefreshRequested:
		d.history.Suppress()
		d.log.Debug("refresh", zap.String("url", d.history.Current()))
		d.sinks.Nav.Reload()

	case KindPageChanged:
		if d.history.RecordVisit(ev.URL) {
			d.log.Debug("page changed", zap.String("url", ev.URL))
			d.sinks.Address.SetText(ev.URL)
		} else {
			d.log.Debug("page changed via history controls", zap.String("url", ev.URL))
		}

	case KindNavigateTo:
		// History is updated by the KindPageChanged the load produces,
		// not here.
		d.log.Debug("navigate", zap.String("url", ev.URL))
		d.sinks.Nav.Load(ev.URL)

	case KindLoadFailed:
		d.handleLoadFailed(ev.URL)

	case KindLoginRequested:
		d.sinks.Login.ShowLogin()
	}
}

func (d *Dispatcher) handleLoadFailed(failedURL string) {
	action, substitute := Resolve(failedURL, d.search, d.lastFallback)
	switch action {
	case ActionGoHome:
		d.lastFallback = ""
		home, err := d.home()
		if err != nil {
			d.log.Error("fallback chain exhausted", zap.String("url", failedURL), zap.Error(err))
			d.sinks.Notify.Notify("could not load " + failedURL + " and home is unavailable: " + err.Error())
			return
		}
		d.log.Warn("fallback failed, going home", zap.String("url", failedURL), zap.String("home", home))
		d.sinks.Nav.Load(home)
	case ActionSubstitute:
		d.lastFallback = substitute
		d.log.Warn("load failed, trying search", zap.String("url", failedURL), zap.String("substitute", substitute))
		d.sinks.Nav.Load(substitute)
	}
}
