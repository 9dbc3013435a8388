package sequencer

// Messages understood by the Scheduler.
type (
	// Configure sets the tempo and the receiver of ticks.
	Configure struct {
		BPM    float64
		Target Receiver
	}
	Play struct{}
	Stop struct{}
)

// Messages understood by the Engine.
type (
	// Tick advances every track by one step.
	Tick struct{}

	// SeqConfig replaces the rhythm of track Index with K pulses over N steps.
	SeqConfig struct {
		Index int
		K, N  int
	}

	// SeqMute toggles the mute flag of track Index.
	SeqMute struct {
		Index int
	}

	// SetNotifier installs the sink for Activate/Deactivate/MuteChanged.
	SetNotifier struct {
		Sink NotificationSink
	}
)

// Events produced by the Engine. They are delivered through NoteOutputSink
// and NotificationSink; the types exist so recorders and tests can keep them
// in order.
type (
	NoteOn struct {
		Note uint8
	}
	NoteOff struct {
		Note uint8
	}
	Activate struct {
		Index int
	}
	Deactivate struct {
		Index int
	}
	MuteChanged struct {
		Index int
		Muted bool
	}
)

// Receiver accepts fire-and-forget messages. Tell never blocks.
type Receiver interface {
	Tell(msg any)
}

// NotificationSink is the presentation side of the engine.
type NotificationSink interface {
	OnActivate(index int)
	OnDeactivate(index int)
	OnMuteChanged(index int, muted bool)
}

// NoteOutputSink plays notes.
type NoteOutputSink interface {
	SendOn(note uint8) error
	SendOff(note uint8) error
}
