package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-euclid/euclid"
)

// MaxSteps bounds the n field.
const MaxSteps = 64

var (
	columnStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(12)
	activeStyle = columnStyle.BorderForeground(lipgloss.Color("#3c3")).Foreground(lipgloss.Color("#3c3"))
	mutedStyle  = columnStyle.BorderForeground(lipgloss.Color("#c33")).Foreground(lipgloss.Color("#c33"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

// Sequencer is the part of the engine the controls drive.
type Sequencer interface {
	ReconfigureTrack(index, k, n int)
	ToggleMute(index int)
}

// Transport starts and stops the tick source.
type Transport interface {
	Play()
	Stop()
}

type field int

const (
	fieldK field = iota
	fieldN
)

// UpdateMsg means the Display changed.
type UpdateMsg struct{}

type Model struct {
	Sequencer Sequencer
	Transport Transport
	Display   *Display

	names   []string
	k, n    []int
	cursor  int
	field   field
	playing bool
	bpm     float64

	quitting bool
}

// NewModel builds the controls. k and n are the values already applied to
// the engine, one per track.
func NewModel(seq Sequencer, transport Transport, display *Display, names []string, k, n []int, bpm float64, playing bool) Model {
	return Model{
		Sequencer: seq,
		Transport: transport,
		Display:   display,
		names:     names,
		k:         append([]int(nil), k...),
		n:         append([]int(nil), n...),
		bpm:       bpm,
		playing:   playing,
	}
}

func ListenForUpdates(d *Display) tea.Cmd {
	return func() tea.Msg {
		<-d.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Display)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "h", "left":
			if m.cursor > 0 {
				m.cursor--
			}

		case "l", "right":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}

		case "tab":
			m.field = 1 - m.field

		case "k", "up":
			m.adjust(1)

		case "j", "down":
			m.adjust(-1)

		case "enter":
			m.Sequencer.ReconfigureTrack(m.cursor, m.k[m.cursor], m.n[m.cursor])

		case "m":
			m.Sequencer.ToggleMute(m.cursor)

		case "p", " ":
			if m.playing {
				m.Transport.Stop()
			} else {
				m.Transport.Play()
			}
			m.playing = !m.playing
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Display)
	}

	return m, nil
}

// adjust edits the selected field, keeping 0 <= k <= n <= MaxSteps.
func (m *Model) adjust(delta int) {
	i := m.cursor
	if m.field == fieldK {
		m.k[i] = clamp(m.k[i]+delta, 0, m.n[i])
		return
	}
	m.n[i] = clamp(m.n[i]+delta, 0, MaxSteps)
	if m.k[i] > m.n[i] {
		m.k[i] = m.n[i]
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	active, muted := m.Display.Snapshot()
	cols := make([]string, len(m.names))
	for i, name := range m.names {
		kv := fmt.Sprintf("k:%3d", m.k[i])
		nv := fmt.Sprintf("n:%3d", m.n[i])
		if i == m.cursor {
			if m.field == fieldK {
				kv = cursorStyle.Render(kv)
			} else {
				nv = cursorStyle.Render(nv)
			}
		}

		style := columnStyle
		switch {
		case i < len(muted) && muted[i]:
			style = mutedStyle
		case i < len(active) && active[i]:
			style = activeStyle
		}
		cols[i] = style.Render(strings.Join([]string{name, kv, nv, preview(m.k[i], m.n[i])}, "\n"))
	}
	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	playState := "stop"
	if m.playing {
		playState = "play"
	}
	status := statusStyle.Render(fmt.Sprintf("%s %3.0fbpm", playState, m.bpm))
	help := dimStyle.Render("h/l:track  tab:k/n  j/k:edit  enter:start  m:mute  p:play/stop  q:quit")

	return fmt.Sprintf("\n%s\n%s\n\n%s\n", grid, status, help)
}

// preview shows the first steps of the pending rhythm.
func preview(k, n int) string {
	r, err := euclid.New(k, n)
	if err != nil {
		return "?"
	}
	s := r.String()
	if len(s) > 10 {
		s = s[:9] + "…"
	}
	return dimStyle.Render(s)
}
