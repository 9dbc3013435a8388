package sequencer

import (
	rtdebug "runtime/debug"
	"sync"

	"go-euclid/debug"
)

// mailbox is an unbounded FIFO drained by a single goroutine. tell never
// blocks, so components can message each other (and timers can message a
// component) without waiting on anyone.
type mailbox struct {
	name  string
	mu    sync.Mutex
	queue []any
	wake  chan struct{} // capacity 1
	done  chan struct{} // closed when run returns
}

func newMailbox(name string) *mailbox {
	return &mailbox{
		name: name,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (b *mailbox) tell(msg any) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// take removes and returns everything queued so far.
func (b *mailbox) take() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queue
	b.queue = nil
	return q
}

// run handles messages in arrival order until finished reports true after a
// batch. Must be called from exactly one goroutine.
func (b *mailbox) run(handle func(any) error, finished func() bool) {
	defer close(b.done)
	for {
		for _, msg := range b.take() {
			b.dispatch(msg, handle)
		}
		if finished() {
			return
		}
		<-b.wake
	}
}

// dispatch is the failure boundary: an error or panic is logged and the
// message dropped. Nothing is retried.
func (b *mailbox) dispatch(msg any, handle func(any) error) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log(b.name, "panic handling %T: %v\n%s", msg, r, rtdebug.Stack())
		}
	}()
	if err := handle(msg); err != nil {
		debug.Log(b.name, "dropped %T: %+v", msg, err)
	}
}
