package chrome

// History tracks visited pages as two stacks: visited (oldest first, the
// last element is the current page) and undone (pages removed by going
// back, most recently undone first). The suppress flag marks the next
// page-change notification as programmatic: the engine reports every page
// change through the same event, so without the flag each back/forward
// jump would be re-recorded as a fresh visit and corrupt both stacks.
//
// History is not safe for concurrent use. The dispatcher goroutine is its
// sole owner; that single-consumer loop is the concurrency mechanism, not
// a mutex.
type History struct {
	visited  []string
	undone   []string
	suppress bool
}

// NewHistory creates a history seeded with the start page. The visited
// stack is never empty afterwards.
func NewHistory(startPage string) *History {
	return &History{visited: []string{startPage}}
}

// RecordVisit notes that url is now displayed. If the suppress flag is
// set the change was caused by the history controls themselves: the flag
// is cleared and nothing is recorded. Otherwise url is appended to
// visited and any forward branch is discarded (history stays linear).
// Reports whether the visit was recorded.
func (h *History) RecordVisit(url string) bool {
	if h.suppress {
		h.suppress = false
		return false
	}
	h.visited = append(h.visited, url)
	h.undone = nil
	return true
}

// GoBack steps to the previous page. The current page moves onto the
// undone stack and the next engine page-change is suppressed. No-op when
// only the seed page remains.
func (h *History) GoBack() (string, bool) {
	if len(h.visited) <= 1 {
		return "", false
	}
	top := h.visited[len(h.visited)-1]
	h.visited = h.visited[:len(h.visited)-1]
	h.undone = append([]string{top}, h.undone...)
	h.suppress = true
	return h.visited[len(h.visited)-1], true
}

// GoForward redoes the most recently undone step. No-op when nothing has
// been undone.
func (h *History) GoForward() (string, bool) {
	if len(h.undone) == 0 {
		return "", false
	}
	next := h.undone[0]
	h.undone = h.undone[1:]
	h.visited = append(h.visited, next)
	h.suppress = true
	return next, true
}

// Current returns the page on top of the visited stack.
func (h *History) Current() string {
	return h.visited[len(h.visited)-1]
}

// Suppress marks the next page-change notification as programmatic
// without moving through the stacks. Used for reloads and the initial
// load of the seeded start page.
func (h *History) Suppress() {
	h.suppress = true
}

// Suppressed reports whether the next page change will be swallowed.
func (h *History) Suppressed() bool {
	return h.suppress
}

// CanGoBack reports whether a back step is possible.
func (h *History) CanGoBack() bool {
	return len(h.visited) > 1
}

// CanGoForward reports whether a forward step is possible.
func (h *History) CanGoForward() bool {
	return len(h.undone) > 0
}

// Visited returns a copy of the visited stack, oldest first.
func (h *History) Visited() []string {
	out := make([]string, len(h.visited))
	copy(out, h.visited)
	return out
}

// Undone returns a copy of the undone stack, most recently undone first.
func (h *History) Undone() []string {
	out := make([]string, len(h.undone))
	copy(out, h.undone)
	return out
}
