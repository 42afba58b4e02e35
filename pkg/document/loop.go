package document

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/net/html"
)

var (
	// ErrClosed is returned when posting to a loop that no longer accepts events.
	ErrClosed = errors.New("event loop closed")

	// ErrAlreadyLoaded is returned when ContentLoaded is posted a second time.
	ErrAlreadyLoaded = errors.New("content already loaded")

	// ErrRunning is returned when Run is called while the loop is already running.
	ErrRunning = errors.New("event loop already running")
)

// EventType identifies the kind of UI event.
type EventType int

const (
	// ContentLoaded fires once, after the document structure is available.
	ContentLoaded EventType = iota
	// Click fires when the user activates an element.
	Click
)

func (t EventType) String() string {
	switch t {
	case ContentLoaded:
		return "content-loaded"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Event is a message delivered by the loop to its listeners.
type Event struct {
	Type EventType

	// Target is the element the event is addressed to. Nil for ContentLoaded.
	Target *html.Node
}

// Handler handles one event. Handlers run on the loop goroutine.
type Handler func(Event)

type listener struct {
	id     int
	typ    EventType
	target *html.Node
	fn     Handler
}

// Loop is a single-consumer UI event queue. Events are delivered one at a
// time, in the order they were posted, to the listeners registered for them.
type Loop struct {
	mu        sync.Mutex
	queue     []Event
	listeners []listener
	nextID    int
	closed    bool
	loaded    bool
	running   bool
	notify    chan struct{}
}

// NewLoop creates an empty event loop.
func NewLoop() *Loop {
	return &Loop{notify: make(chan struct{}, 1)}
}

// Listen registers fn for events of type typ. For Click, target selects the
// element the listener is bound to. The returned cancel func removes the
// listener; calling it more than once is safe.
func (l *Loop) Listen(typ EventType, target *html.Node, fn Handler) (cancel func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.listeners = append(l.listeners, listener{id: id, typ: typ, target: target, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, ln := range l.listeners {
			if ln.id == id {
				l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// Post enqueues an event. It never blocks.
func (l *Loop) Post(ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	if ev.Type == ContentLoaded {
		if l.loaded {
			return ErrAlreadyLoaded
		}
		l.loaded = true
	}

	l.queue = append(l.queue, ev)
	l.wake()

	return nil
}

// Click posts a click on target.
func (l *Loop) Click(target *html.Node) error {
	return l.Post(Event{Type: Click, Target: target})
}

// Close stops the loop from accepting new events. Events already queued are
// still delivered. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	l.wake()
}

// Run delivers queued events until the loop is closed and drained, in which
// case it returns nil, or until ctx is done, in which case it returns
// ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, handlers, ok, done := l.next()
		if done {
			return nil
		}

		if ok {
			for _, h := range handlers {
				h(ev)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
	}
}

// next pops the oldest event and snapshots its listeners. done reports that
// the loop is closed and has nothing left to deliver.
func (l *Loop) next() (ev Event, handlers []Handler, ok, done bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return Event{}, nil, false, l.closed
	}

	ev = l.queue[0]
	l.queue = l.queue[1:]

	for _, ln := range l.listeners {
		if ln.typ != ev.Type {
			continue
		}
		if ln.target != nil && ln.target != ev.Target {
			continue
		}
		handlers = append(handlers, ln.fn)
	}

	return ev, handlers, true, false
}

// wake must be called with mu held.
func (l *Loop) wake() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}
