// Package chrome implements the browser chrome state machine: the
// back/forward history model, the serialized event dispatch loop, the
// failed-load fallback chain, and the bookmark tree materialization.
// All mutable navigation state lives here and is owned by exactly one
// dispatcher goroutine; everything else talks to it through the queue.
package chrome

import "fmt"

// Kind identifies an event in the chrome taxonomy.
type Kind int

const (
	// KindBackRequested asks for a step back through visited pages.
	KindBackRequested Kind = iota
	// KindForwardRequested asks to redo the most recently undone step.
	KindForwardRequested
	// KindRefreshRequested asks for a reload of the current page.
	KindRefreshRequested
	// KindPageChanged reports that the engine started displaying a page.
	// Emitted for every page change, including ones the dispatcher itself
	// caused via back/forward/refresh.
	KindPageChanged
	// KindNavigateTo carries a user-chosen destination (address bar entry,
	// bookmark or link activation).
	KindNavigateTo
	// KindLoadFailed reports that a load could not complete.
	KindLoadFailed
	// KindLoginRequested asks for the sign-in dialog.
	KindLoginRequested
)

func (k Kind) String() string {
	switch k {
	case KindBackRequested:
		return "back-requested"
	case KindForwardRequested:
		return "forward-requested"
	case KindRefreshRequested:
		return "refresh-requested"
	case KindPageChanged:
		return "page-changed"
	case KindNavigateTo:
		return "navigate-to"
	case KindLoadFailed:
		return "load-failed"
	case KindLoginRequested:
		return "login-requested"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single unit of work for the dispatcher. URL is empty for
// kinds that carry no payload.
type Event struct {
	Kind Kind
	URL  string
}
