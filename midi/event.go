package midi

import gomidi "gitlab.com/gomidi/midi/v2"

// Wire convention: every message is a note-on on channel 1. A note is
// released by a note-on with velocity 0, never by a 0x80 note-off.
const (
	StatusNoteOn uint8 = 0x90
	VelocityOn   uint8 = 100
	VelocityOff  uint8 = 0

	channel uint8 = 0 // channel 1
)

// NoteOn is [0x90, note, 100].
func NoteOn(note uint8) gomidi.Message {
	return gomidi.NoteOn(channel, note, VelocityOn)
}

// NoteOff is [0x90, note, 0].
func NoteOff(note uint8) gomidi.Message {
	return gomidi.NoteOn(channel, note, VelocityOff)
}
