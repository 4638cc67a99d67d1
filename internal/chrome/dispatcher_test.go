package chrome

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeSinks records every command the dispatcher issues.
type fakeSinks struct {
	loads     []string
	reloads   int
	addresses []string
	logins    int
	notices   []string
	displayed string
}

func (f *fakeSinks) Load(url string)             { f.loads = append(f.loads, url); f.displayed = url }
func (f *fakeSinks) Reload()                     { f.reloads++ }
func (f *fakeSinks) CurrentDisplayedURL() string { return f.displayed }
func (f *fakeSinks) SetText(url string)          { f.addresses = append(f.addresses, url) }
func (f *fakeSinks) ShowLogin()                  { f.logins++ }
func (f *fakeSinks) Notify(message string)       { f.notices = append(f.notices, message) }

func newTestDispatcher(start string) (*Dispatcher, *fakeSinks) {
	f := &fakeSinks{}
	sinks := Sinks{Nav: f, Address: f, Login: f, Notify: f}
	d := NewDispatcher(NewQueue(), start, testTemplate, sinks, zap.NewNop())
	return d, f
}

func TestDispatcherBackNavigatesAndSetsAddress(t *testing.T) {
	d, f := newTestDispatcher("x")
	d.history.RecordVisit("y")

	d.handle(Event{Kind: KindBackRequested})

	if !reflect.DeepEqual(f.loads, []string{"x"}) {
		t.Errorf("loads = %v, want [x]", f.loads)
	}
	if !reflect.DeepEqual(f.addresses, []string{"x"}) {
		t.Errorf("addresses = %v, want [x]", f.addresses)
	}

	// The engine reports the programmatic change; it must be swallowed.
	d.handle(Event{Kind: KindPageChanged, URL: "x"})
	if got := d.history.Visited(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("visited = %v, want [x]", got)
	}
	if got := d.history.Undone(); !reflect.DeepEqual(got, []string{"y"}) {
		t.Errorf("undone = %v, want [y]", got)
	}
}

func TestDispatcherBackAtSeedDoesNothing(t *testing.T) {
	d, f := newTestDispatcher("x")

	d.handle(Event{Kind: KindBackRequested})

	if len(f.loads) != 0 || len(f.addresses) != 0 {
		t.Errorf("no-op back issued commands: loads=%v addresses=%v", f.loads, f.addresses)
	}
}

func TestDispatcherForwardRestoresUndonePage(t *testing.T) {
	d, f := newTestDispatcher("x")
	d.history.RecordVisit("y")
	d.handle(Event{Kind: KindBackRequested})
	d.handle(Event{Kind: KindPageChanged, URL: "x"})

	d.handle(Event{Kind: KindForwardRequested})

	if want := []string{"x", "y"}; !reflect.DeepEqual(f.loads, want) {
		t.Errorf("loads = %v, want %v", f.loads, want)
	}
	d.handle(Event{Kind: KindPageChanged, URL: "y"})
	if d.history.Current() != "y" {
		t.Errorf("Current() = %q, want y", d.history.Current())
	}
	if d.history.CanGoForward() {
		t.Error("undone not consumed by forward")
	}
}

func TestDispatcherRefreshSuppressesNextChange(t *testing.T) {
	d, f := newTestDispatcher("x")
	d.history.RecordVisit("y")

	d.handle(Event{Kind: KindRefreshRequested})
	if f.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", f.reloads)
	}

	d.handle(Event{Kind: KindPageChanged, URL: "y"})
	if got := d.history.Visited(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("reload re-recorded the page: visited = %v", got)
	}
}

func TestDispatcherPageChangedRecordsAndSetsAddress(t *testing.T) {
	d, f := newTestDispatcher("x")

	d.handle(Event{Kind: KindPageChanged, URL: "y"})

	if d.history.Current() != "y" {
		t.Errorf("Current() = %q, want y", d.history.Current())
	}
	if !reflect.DeepEqual(f.addresses, []string{"y"}) {
		t.Errorf("addresses = %v, want [y]", f.addresses)
	}
}

func TestDispatcherNavigateToLoadsWithoutRecording(t *testing.T) {
	d, f := newTestDispatcher("x")

	d.handle(Event{Kind: KindNavigateTo, URL: "y"})

	if !reflect.DeepEqual(f.loads, []string{"y"}) {
		t.Errorf("loads = %v, want [y]", f.loads)
	}
	// Recording happens only on the later KindPageChanged.
	if d.history.Current() != "x" {
		t.Errorf("Current() = %q before page change, want x", d.history.Current())
	}
}

func TestDispatcherFallbackChainEndsAtHome(t *testing.T) {
	d, f := newTestDispatcher("x")
	d.home = func() (string, error) { return "file:///home/test", nil }

	d.handle(Event{Kind: KindLoadFailed, URL: "y"})
	if len(f.loads) != 1 {
		t.Fatalf("loads = %v, want one substitute load", f.loads)
	}
	substitute := f.loads[0]
	if substitute == "y" {
		t.Fatal("dispatcher retried the failed URL verbatim")
	}

	// The substitute fails as well: unconditional jump home.
	d.handle(Event{Kind: KindLoadFailed, URL: substitute})
	if want := "file:///home/test"; f.loads[len(f.loads)-1] != want {
		t.Errorf("final load = %q, want %q", f.loads[len(f.loads)-1], want)
	}

	// The chain restarted: a later failure substitutes again.
	d.handle(Event{Kind: KindLoadFailed, URL: "z"})
	if last := f.loads[len(f.loads)-1]; last == "z" || last == "file:///home/test" {
		t.Errorf("chain did not restart after home, load = %q", last)
	}
}

func TestDispatcherHomeResolutionFailureIsReported(t *testing.T) {
	d, f := newTestDispatcher("x")
	d.home = func() (string, error) { return "", errors.New("no home") }

	d.handle(Event{Kind: KindLoadFailed, URL: "y"})
	substitute := f.loads[0]
	d.handle(Event{Kind: KindLoadFailed, URL: substitute})

	if len(f.notices) != 1 {
		t.Fatalf("notices = %v, want one last-resort failure", f.notices)
	}
	// The dispatcher must stay usable after the hard error.
	d.handle(Event{Kind: KindNavigateTo, URL: "z"})
	if f.loads[len(f.loads)-1] != "z" {
		t.Error("dispatcher did not return to idle after home failure")
	}
}

func TestDispatcherLoginOpensDialogWithoutStateChange(t *testing.T) {
	d, f := newTestDispatcher("x")
	visited := d.history.Visited()

	d.handle(Event{Kind: KindLoginRequested})

	if f.logins != 1 {
		t.Errorf("logins = %d, want 1", f.logins)
	}
	if !reflect.DeepEqual(d.history.Visited(), visited) {
		t.Error("login request mutated history")
	}
}

func TestDispatcherRunIssuesSuppressedInitialLoad(t *testing.T) {
	d, f := newTestDispatcher("x")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	// The engine confirms the initial load; the seed must not be
	// recorded a second time.
	d.queue.Enqueue(Event{Kind: KindPageChanged, URL: "x"})
	d.queue.Enqueue(Event{Kind: KindPageChanged, URL: "y"})

	deadline := time.After(2 * time.Second)
	for d.queue.Len() > 0 {
		select {
		case <-deadline:
			t.Fatal("dispatcher did not drain the queue")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	cancel()
	<-done

	if !reflect.DeepEqual(f.loads, []string{"x"}) {
		t.Errorf("loads = %v, want initial [x]", f.loads)
	}
	if got := d.history.Visited(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("visited = %v, want [x y]", got)
	}
}
