package tui

import "sync"

// Display records what the engine reports so the view can draw it. It
// satisfies sequencer.NotificationSink and never blocks the engine.
type Display struct {
	mu     sync.Mutex
	active []bool
	muted  []bool

	// UpdateChan is signalled (non-blocking) after every change.
	UpdateChan chan struct{}
}

func NewDisplay(tracks int) *Display {
	return &Display{
		active:     make([]bool, tracks),
		muted:      make([]bool, tracks),
		UpdateChan: make(chan struct{}, 1),
	}
}

func (d *Display) OnActivate(index int)   { d.set(d.active, index, true) }
func (d *Display) OnDeactivate(index int) { d.set(d.active, index, false) }

// OnMuteChanged also clears the highlight; a muted track is drawn as muted.
func (d *Display) OnMuteChanged(index int, muted bool) {
	d.mu.Lock()
	if index >= 0 && index < len(d.muted) {
		d.muted[index] = muted
		d.active[index] = false
	}
	d.mu.Unlock()
	d.notify()
}

func (d *Display) set(flags []bool, index int, v bool) {
	d.mu.Lock()
	if index >= 0 && index < len(flags) {
		flags[index] = v
	}
	d.mu.Unlock()
	d.notify()
}

func (d *Display) notify() {
	select {
	case d.UpdateChan <- struct{}{}:
	default:
	}
}

// Snapshot copies the current flags.
func (d *Display) Snapshot() (active, muted []bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]bool(nil), d.active...), append([]bool(nil), d.muted...)
}
