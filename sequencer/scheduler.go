package sequencer

import (
	"context"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"go-euclid/debug"
)

// State is the transport state of a Scheduler.
type State int

const (
	Idle State = iota
	Configured
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// PeriodFor returns the length of one sixteenth note at bpm.
func PeriodFor(bpm float64) (time.Duration, error) {
	if !(bpm > 0) {
		return 0, errors.Wrapf(ErrConfiguration, "bpm must be positive, got %v", bpm)
	}
	return time.Duration(float64(time.Minute) / bpm / 4), nil
}

// pulse is the scheduler's own timer firing. gen ties it to one Play.
type pulse struct {
	gen uint64
}

type closeScheduler struct{}

// Scheduler sends a Tick to its target once per sixteenth note while
// playing. All state is owned by the mailbox goroutine.
type Scheduler struct {
	box       *mailbox
	afterFunc func(time.Duration, func())

	state  State
	period time.Duration
	target Receiver
	gen    uint64
	closed bool
}

// NewScheduler creates an idle scheduler. Call Start to run it.
func NewScheduler() *Scheduler {
	return &Scheduler{
		box:       newMailbox("sched"),
		afterFunc: afterFunc,
	}
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Start runs the mailbox loop in the background.
func (s *Scheduler) Start() {
	go s.box.run(s.handle, func() bool { return s.closed })
}

// Tell queues any scheduler message.
func (s *Scheduler) Tell(msg any) { s.box.tell(msg) }

func (s *Scheduler) Configure(bpm float64, target Receiver) {
	s.Tell(Configure{BPM: bpm, Target: target})
}

func (s *Scheduler) Play() { s.Tell(Play{}) }
func (s *Scheduler) Stop() { s.Tell(Stop{}) }

// Close stops the transport and ends the loop. Timers still in flight fire
// into a mailbox nobody reads.
func (s *Scheduler) Close(ctx context.Context) error {
	s.Tell(closeScheduler{})
	select {
	case <-s.box.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) handle(msg any) error {
	switch m := msg.(type) {
	case Configure:
		return s.configure(m.BPM, m.Target)
	case Play:
		return s.play()
	case Stop:
		return s.stop()
	case pulse:
		s.onPulse(m.gen)
		return nil
	case closeScheduler:
		s.state = Stopped
		s.closed = true
		return nil
	default:
		return errors.Errorf("unexpected message %T", msg)
	}
}

func (s *Scheduler) configure(bpm float64, target Receiver) error {
	period, err := PeriodFor(bpm)
	if err != nil {
		return err
	}
	if isNil(target) {
		return errors.WithStack(ErrUnknownDestination)
	}
	s.period = period
	s.target = target
	if s.state != Running {
		s.state = Configured
	}
	debug.Log("sched", "configured bpm=%v period=%v state=%v", bpm, period, s.state)
	return nil
}

// isNil also catches a nil pointer stored in the interface.
func isNil(r Receiver) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (s *Scheduler) play() error {
	if s.state == Idle {
		return errors.Wrap(ErrConfiguration, "play before configure")
	}
	if s.state == Running {
		return nil
	}
	s.state = Running
	s.gen++
	debug.Log("sched", "play gen=%d", s.gen)
	s.onPulse(s.gen)
	return nil
}

func (s *Scheduler) stop() error {
	if s.state == Idle {
		return errors.Wrap(ErrConfiguration, "stop before configure")
	}
	s.state = Stopped
	debug.Log("sched", "stop gen=%d", s.gen)
	return nil
}

// onPulse emits one tick and arms the next. A pulse that outlived its Play
// is discarded here.
func (s *Scheduler) onPulse(gen uint64) {
	if s.state != Running || gen != s.gen {
		return
	}
	s.target.Tell(Tick{})
	s.afterFunc(s.period, func() { s.box.tell(pulse{gen: gen}) })
}
