package midi

import (
	"sync"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Output plays notes on one MIDI port. It satisfies sequencer.NoteOutputSink.
type Output struct {
	name string
	port drivers.Out
	mu   sync.Mutex
	send func(gomidi.Message) error
}

// NewOutput wraps an already opened sender.
func NewOutput(name string, send func(gomidi.Message) error) *Output {
	return &Output{name: name, send: send}
}

// OpenOutput opens the output port matching name. See matchPort.
func OpenOutput(name string) (*Output, error) {
	outs, err := OutPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}

	i := matchPort(names, name)
	if i < 0 {
		return nil, errors.Wrapf(ErrNoOutputPort, "%q (have %v)", name, names)
	}
	send, err := gomidi.SendTo(outs[i])
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", names[i])
	}
	o := NewOutput(names[i], send)
	o.port = outs[i]
	return o, nil
}

func (o *Output) Name() string { return o.name }

func (o *Output) SendOn(note uint8) error {
	return o.write(NoteOn(note))
}

func (o *Output) SendOff(note uint8) error {
	return o.write(NoteOff(note))
}

func (o *Output) write(msg gomidi.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.send(msg); err != nil {
		return errors.Wrapf(err, "send % X to %q", []byte(msg), o.name)
	}
	return nil
}

// Close closes the port if this Output opened it.
func (o *Output) Close() error {
	if o.port == nil {
		return nil
	}
	return o.port.Close()
}
