package sequencer

import "go-euclid/euclid"

// DefaultNames mirror a small drum machine.
var DefaultNames = []string{"Kick", "Snare", "Cl. HiHat", "Op. HiHat", "Clave", "Cowbell"}

// DefaultNotes are the notes played by the default six tracks.
var DefaultNotes = []uint8{60, 61, 62, 63, 64, 65}

// track is one voice: a rhythm, the note it plays and a mute flag.
// index and note never change.
type track struct {
	index  int
	rhythm *euclid.Rhythm
	note   uint8
	muted  bool
}

func newTrack(index int, note uint8) *track {
	return &track{
		index:  index,
		rhythm: euclid.Silent(),
		note:   note,
	}
}

// step advances the rhythm and reports whether the track should sound.
// The rhythm moves even when muted so the track stays in phase.
func (t *track) step() bool {
	on := t.rhythm.Next()
	return on && !t.muted
}
