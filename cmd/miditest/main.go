package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-euclid/euclid"
	"go-euclid/midi"
	"go-euclid/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "note":
		err = testNote(os.Args[2:])
	case "pattern":
		err = printPattern(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List MIDI output ports")
	fmt.Println("  note <port> [note]   - Send one note on/off pair (default note 60)")
	fmt.Println("  pattern <k> <n>      - Print one period of a Euclidean rhythm")
}

func listPorts() error {
	defer gomidi.CloseDriver()
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Printf("(waiting up to %v...)\n", midi.ScanTimeout)

	names, err := midi.OutPortNames()
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
	return nil
}

func testNote(args []string) error {
	if len(args) < 1 {
		usage()
		return nil
	}
	note := uint8(60)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 7)
		if err != nil {
			return err
		}
		note = uint8(n)
	}

	defer gomidi.CloseDriver()
	out, err := midi.OpenOutput(args[0])
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Sending % X to %s\n", []byte(midi.NoteOn(note)), out.Name())
	if err := out.SendOn(note); err != nil {
		return err
	}
	time.Sleep(sequencer.NoteOffDelay)
	fmt.Printf("Sending % X to %s\n", []byte(midi.NoteOff(note)), out.Name())
	return out.SendOff(note)
}

func printPattern(args []string) error {
	if len(args) < 2 {
		usage()
		return nil
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	r, err := euclid.New(k, n)
	if err != nil {
		return err
	}
	fmt.Printf("E(%d,%d) %s\n", k, n, r)
	return nil
}
