package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	ErrNoOutputPort = errors.New("no matching MIDI output port")
	ErrPortTimeout  = errors.New("timed out listing MIDI ports")
)

// ScanTimeout bounds port discovery (CoreMIDI can hang).
var ScanTimeout = 3 * time.Second

// OutPorts lists the output ports of the registered driver.
func OutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(ScanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, errors.WithStack(ErrPortTimeout)
	}
}

// OutPortNames lists the output port names.
func OutPortNames() ([]string, error) {
	outs, err := OutPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// matchPort picks an exact name match, else the first port whose name
// contains name (case-insensitive).
func matchPort(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	needle := strings.ToLower(name)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			return i
		}
	}
	return -1
}
