package sequencer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"go-euclid/debug"
	"go-euclid/euclid"
)

// NoteOffDelay is how long a triggered note sounds.
const NoteOffDelay = 50 * time.Millisecond

// noteOffDue is the engine's own timer firing for a sounding note.
type noteOffDue struct {
	index int
	note  uint8
}

type closeEngine struct{}

// Engine owns the tracks. It advances all of them on every Tick and turns
// pulses into note-on/note-off pairs. Every field below box is touched only
// by the mailbox goroutine.
type Engine struct {
	box       *mailbox
	afterFunc func(time.Duration, func())

	out      NoteOutputSink
	notifier NotificationSink
	tracks   []*track

	pending int // note-offs scheduled but not yet sent
	closing bool
}

// NewEngine creates an engine with one track per note. out must not be nil.
func NewEngine(out NoteOutputSink, notes []uint8) *Engine {
	e := &Engine{
		box:       newMailbox("engine"),
		afterFunc: afterFunc,
		out:       out,
		tracks:    make([]*track, len(notes)),
	}
	for i, n := range notes {
		e.tracks[i] = newTrack(i, n)
	}
	return e
}

// Start runs the mailbox loop in the background.
func (e *Engine) Start() {
	go e.box.run(e.handle, e.finished)
}

// Tell queues any engine message. The Engine is the Receiver a Scheduler
// ticks.
func (e *Engine) Tell(msg any) { e.box.tell(msg) }

func (e *Engine) SetNotifier(sink NotificationSink) { e.Tell(SetNotifier{Sink: sink}) }

func (e *Engine) ReconfigureTrack(index, k, n int) { e.Tell(SeqConfig{Index: index, K: k, N: n}) }

func (e *Engine) ToggleMute(index int) { e.Tell(SeqMute{Index: index}) }

// Close stops reacting to ticks, waits until every sounding note has been
// switched off and ends the loop.
func (e *Engine) Close(ctx context.Context) error {
	e.Tell(closeEngine{})
	select {
	case <-e.box.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) finished() bool {
	return e.closing && e.pending == 0
}

func (e *Engine) handle(msg any) error {
	switch m := msg.(type) {
	case Tick:
		return e.tick()
	case noteOffDue:
		return e.noteOff(m)
	case SeqConfig:
		return e.reconfigureTrack(m.Index, m.K, m.N)
	case SeqMute:
		return e.toggleMute(m.Index)
	case SetNotifier:
		e.notifier = m.Sink
		return nil
	case closeEngine:
		e.closing = true
		debug.Log("engine", "closing, %d note-offs pending", e.pending)
		return nil
	default:
		return errors.Errorf("unexpected message %T", msg)
	}
}

func (e *Engine) lookup(index int) (*track, error) {
	if index < 0 || index >= len(e.tracks) {
		return nil, errors.Wrapf(ErrInvalidTrackIndex, "index %d, have %d tracks", index, len(e.tracks))
	}
	return e.tracks[index], nil
}

func (e *Engine) reconfigureTrack(index, k, n int) error {
	t, err := e.lookup(index)
	if err != nil {
		return err
	}
	r, err := euclid.New(k, n)
	if err != nil {
		return errors.Wrapf(ErrConfiguration, "track %d: %v", index, err)
	}
	t.rhythm = r
	debug.Log("engine", "track %d: k=%d n=%d %s", index, k, n, r)
	return nil
}

func (e *Engine) toggleMute(index int) error {
	t, err := e.lookup(index)
	if err != nil {
		return err
	}
	t.muted = !t.muted
	if e.notifier != nil {
		e.notifier.OnMuteChanged(index, t.muted)
	}
	return nil
}

// tick advances every track exactly once, in index order. A failing output
// does not stop the remaining tracks; the first failure is returned.
func (e *Engine) tick() error {
	if e.closing {
		return nil
	}
	debug.LogEvery(64, "engine", "tick")

	var failed error
	for _, t := range e.tracks {
		if !t.step() {
			continue
		}
		if e.notifier != nil {
			e.notifier.OnActivate(t.index)
		}
		if err := e.out.SendOn(t.note); err != nil && failed == nil {
			failed = errors.Wrapf(ErrOutputDevice, "note on %d: %v", t.note, err)
		}
		// Always arm the note-off, even after a failed note-on.
		e.pending++
		due := noteOffDue{index: t.index, note: t.note}
		e.afterFunc(NoteOffDelay, func() { e.box.tell(due) })
	}
	return failed
}

// noteOff always releases the note. The display is only cleared if the
// track is unmuted now; a mute in between already repainted it.
func (e *Engine) noteOff(m noteOffDue) error {
	e.pending--
	err := e.out.SendOff(m.note)
	if e.notifier != nil && !e.tracks[m.index].muted {
		e.notifier.OnDeactivate(m.index)
	}
	if err != nil {
		return errors.Wrapf(ErrOutputDevice, "note off %d: %v", m.note, err)
	}
	return nil
}
