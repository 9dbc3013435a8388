package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type call struct {
	op    string
	index int
	k, n  int
}

type fakeSeq struct{ calls []call }

func (f *fakeSeq) ReconfigureTrack(index, k, n int) {
	f.calls = append(f.calls, call{op: "config", index: index, k: k, n: n})
}
func (f *fakeSeq) ToggleMute(index int) { f.calls = append(f.calls, call{op: "mute", index: index}) }
func (f *fakeSeq) Play()                { f.calls = append(f.calls, call{op: "play"}) }
func (f *fakeSeq) Stop()                { f.calls = append(f.calls, call{op: "stop"}) }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newTestModel() (Model, *fakeSeq) {
	f := &fakeSeq{}
	names := []string{"Kick", "Snare", "Clave"}
	m := NewModel(f, f, NewDisplay(len(names)), names, []int{0, 0, 0}, []int{0, 0, 0}, 120, false)
	return m, f
}

func TestEditAndApplyTrack(t *testing.T) {
	m, f := newTestModel()
	// n up to 8, k up to 3 on the second track, then apply
	m = press(m, "l", "tab", "k", "k", "k", "k", "k", "k", "k", "k", "tab", "k", "k", "k", "enter")

	want := []call{{op: "config", index: 1, k: 3, n: 8}}
	if !reflect.DeepEqual(want, f.calls) {
		t.Fatalf("want %+v, got %+v", want, f.calls)
	}
}

func TestPulsesNeverExceedSteps(t *testing.T) {
	m, _ := newTestModel()
	m = press(m, "tab", "k", "k", "tab", "k", "k", "k", "k") // n=2, k capped at 2
	if m.k[0] != 2 || m.n[0] != 2 {
		t.Fatalf("k=%d n=%d", m.k[0], m.n[0])
	}
	m = press(m, "tab", "j") // n=1 drags k down
	if m.k[0] != 1 || m.n[0] != 1 {
		t.Fatalf("k=%d n=%d", m.k[0], m.n[0])
	}
	m = press(m, "j", "j", "j") // n stays at 0
	if m.k[0] != 0 || m.n[0] != 0 {
		t.Fatalf("k=%d n=%d", m.k[0], m.n[0])
	}
}

func TestMuteAndTransport(t *testing.T) {
	m, f := newTestModel()
	m = press(m, "l", "l", "l", "m", "p", "p")
	want := []call{{op: "mute", index: 2}, {op: "play"}, {op: "stop"}}
	if !reflect.DeepEqual(want, f.calls) {
		t.Fatalf("want %+v, got %+v", want, f.calls)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("no quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
	if next.(Model).View() != "" {
		t.Fatal("view after quit")
	}
}

func TestDisplayTracksNotifications(t *testing.T) {
	d := NewDisplay(3)
	d.OnActivate(1)
	d.OnMuteChanged(2, true)
	d.OnActivate(7) // out of range, ignored

	active, muted := d.Snapshot()
	if !reflect.DeepEqual([]bool{false, true, false}, active) || !reflect.DeepEqual([]bool{false, false, true}, muted) {
		t.Fatalf("active %v muted %v", active, muted)
	}
	select {
	case <-d.UpdateChan:
	default:
		t.Fatal("no update signalled")
	}

	d.OnDeactivate(1)
	d.OnMuteChanged(2, false)
	active, muted = d.Snapshot()
	if active[1] || muted[2] {
		t.Fatalf("active %v muted %v", active, muted)
	}
}

func TestViewShowsTracks(t *testing.T) {
	m, _ := newTestModel()
	m = press(m, "tab", "k", "k", "k", "k", "k", "k", "k", "k", "tab", "k", "k", "k")
	v := m.View()
	for _, want := range []string{"Kick", "Snare", "Clave", "stop", "120bpm", "x..x..x."} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}
