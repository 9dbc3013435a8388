package sequencer

import (
	"sync"
	"time"
)

// recorder is both sinks. It keeps every event in the order it was emitted.
type recorder struct {
	mu     sync.Mutex
	events []any
	err    error // returned by SendOn/SendOff
}

func (r *recorder) add(ev any) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) SendOn(note uint8) error {
	r.add(NoteOn{Note: note})
	return r.err
}

func (r *recorder) SendOff(note uint8) error {
	r.add(NoteOff{Note: note})
	return r.err
}

func (r *recorder) OnActivate(index int)   { r.add(Activate{Index: index}) }
func (r *recorder) OnDeactivate(index int) { r.add(Deactivate{Index: index}) }
func (r *recorder) OnMuteChanged(index int, muted bool) {
	r.add(MuteChanged{Index: index, Muted: muted})
}

// drain returns the events recorded since the last drain.
func (r *recorder) drain() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev := r.events
	r.events = nil
	return ev
}

func (r *recorder) count(match func(any) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

// inbox is a Receiver that keeps what it is told.
type inbox struct {
	mu   sync.Mutex
	msgs []any
}

func (i *inbox) Tell(msg any) {
	i.mu.Lock()
	i.msgs = append(i.msgs, msg)
	i.mu.Unlock()
}

func (i *inbox) len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.msgs)
}

// fakeTimers replaces time.AfterFunc so deferred actions fire on demand.
type fakeTimers struct {
	mu    sync.Mutex
	armed []armedTimer
}

type armedTimer struct {
	d time.Duration
	f func()
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) {
	ft.mu.Lock()
	ft.armed = append(ft.armed, armedTimer{d: d, f: f})
	ft.mu.Unlock()
}

// fire runs every armed timer and returns their delays.
func (ft *fakeTimers) fire() []time.Duration {
	ft.mu.Lock()
	armed := ft.armed
	ft.armed = nil
	ft.mu.Unlock()

	var ds []time.Duration
	for _, a := range armed {
		ds = append(ds, a.d)
		a.f()
	}
	return ds
}

func (ft *fakeTimers) len() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.armed)
}

// pump handles whatever is queued in b on the calling goroutine.
func pump(b *mailbox, handle func(any) error) {
	for _, msg := range b.take() {
		b.dispatch(msg, handle)
	}
}

func newTestEngine(notes []uint8) (*Engine, *recorder, *fakeTimers) {
	rec := &recorder{}
	ft := &fakeTimers{}
	e := NewEngine(rec, notes)
	e.afterFunc = ft.afterFunc
	e.notifier = rec
	return e, rec, ft
}
