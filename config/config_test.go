package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.BPM != 120 || c.Port != "loop" {
		t.Fatalf("bpm=%v port=%q", c.BPM, c.Port)
	}
	if want := []uint8{60, 61, 62, 63, 64, 65}; !reflect.DeepEqual(want, c.Notes()) {
		t.Fatalf("notes %v", c.Notes())
	}
	if c.Names()[0] != "Kick" || c.Names()[5] != "Cowbell" {
		t.Fatalf("names %v", c.Names())
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(DefaultConfig(), c) {
		t.Fatalf("got %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `bpm: 96
port: IAC Driver Bus 1
tracks:
  - {name: Kick, note: 36, k: 4, n: 16}
  - {name: Rim, note: 37, k: 3, n: 8}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		BPM:  96,
		Port: "IAC Driver Bus 1",
		Tracks: []TrackConfig{
			{Name: "Kick", Note: 36, Pulses: 4, Steps: 16},
			{Name: "Rim", Note: 37, Pulses: 3, Steps: 8},
		},
	}
	if !reflect.DeepEqual(want, c) {
		t.Fatalf("\nwant: %+v\ngot:  %+v", want, c)
	}
}

func TestLoadFileKeepsDefaultTracksWhenOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("bpm: 140\n"), 0644)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.BPM != 140 || len(c.Tracks) != 6 || c.Port != "loop" {
		t.Fatalf("got %+v", c)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"zero bpm":     "bpm: 0\n",
		"k over n":     "tracks:\n  - {name: x, note: 60, k: 5, n: 4}\n",
		"note range":   "tracks:\n  - {name: x, note: 200, k: 1, n: 4}\n",
		"broken yaml":  "bpm: [\n",
		"negative k n": "tracks:\n  - {name: x, note: 60, k: -1, n: 4}\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		os.WriteFile(path, []byte(data), 0644)
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestSaveFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	c := DefaultConfig()
	c.Tracks[2].Pulses, c.Tracks[2].Steps = 33, 64
	if err := c.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	back, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, back) {
		t.Fatalf("\nsaved:  %+v\nloaded: %+v", c, back)
	}
}

func TestSaveWritesUnderConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c := DefaultConfig()
	c.BPM = 98
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	back, err := LoadFile(filepath.Join(home, ".config", "go-euclid", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if back.BPM != 98 {
		t.Fatalf("bpm %v", back.BPM)
	}
}
