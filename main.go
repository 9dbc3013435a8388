package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-euclid/config"
	"go-euclid/debug"
	"go-euclid/midi"
	"go-euclid/sequencer"
	"go-euclid/tui"
)

type args struct {
	Config      string  `arg:"-c,--config" help:"config file (default ~/.config/go-euclid/config.yaml)"`
	BPM         float64 `arg:"-b,--bpm" help:"tempo, overrides the config"`
	Port        string  `arg:"-p,--port" help:"MIDI output port name or substring, overrides the config"`
	Play        bool    `arg:"--play" help:"start playing immediately"`
	Debug       bool    `arg:"--debug" help:"log to ~/.config/go-euclid/debug.log"`
	List        bool    `arg:"--list" help:"list MIDI output ports and exit"`
	WriteConfig bool    `arg:"--write-config" help:"write the default config file and exit"`
}

func (args) Description() string {
	return "go-euclid plays Euclidean rhythms on a MIDI output"
}

// shutdownTimeout bounds the note-off flush on exit.
const shutdownTimeout = 2 * time.Second

func main() {
	var a args
	arg.MustParse(&a)

	if err := run(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(a args) error {
	if a.Debug {
		if err := debug.Enable(""); err != nil {
			return err
		}
		defer debug.Disable()
	}

	if a.WriteConfig {
		if a.Config != "" {
			return config.DefaultConfig().SaveFile(a.Config)
		}
		return config.DefaultConfig().Save()
	}

	if a.List {
		defer gomidi.CloseDriver()
		names, err := midi.OutPortNames()
		if err != nil {
			return err
		}
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i, name)
		}
		return nil
	}

	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}

	// Output device failures are fatal here and nowhere else.
	out, err := openOutput(cfg.Port)
	if err != nil {
		return err
	}
	defer gomidi.CloseDriver()
	defer out.Close()
	debug.Log("main", "output %q", out.Name())

	display := tui.NewDisplay(len(cfg.Tracks))

	engine := sequencer.NewEngine(out, cfg.Notes())
	engine.Start()
	engine.SetNotifier(display)

	ks := make([]int, len(cfg.Tracks))
	ns := make([]int, len(cfg.Tracks))
	for i, t := range cfg.Tracks {
		ks[i], ns[i] = t.Pulses, t.Steps
		engine.ReconfigureTrack(i, t.Pulses, t.Steps)
	}

	sched := sequencer.NewScheduler()
	sched.Start()
	sched.Configure(cfg.BPM, engine)
	if cfg.Autoplay {
		sched.Play()
	}

	m := tui.NewModel(engine, sched, display, cfg.Names(), ks, ns, cfg.BPM, cfg.Autoplay)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, uiErr := p.Run()

	// Stop ticking first, then let every sounding note be released.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	sched.Stop()
	if err := sched.Close(ctx); err != nil {
		debug.Log("main", "scheduler close: %v", err)
	}
	if err := engine.Close(ctx); err != nil {
		debug.Log("main", "engine close: %v", err)
	}
	return uiErr
}

func openOutput(port string) (*midi.Output, error) {
	out, err := midi.OpenOutput(port)
	if err != nil {
		return nil, errors.Wrapf(sequencer.ErrOutputDevice, "%v", err)
	}
	return out, nil
}

func loadConfig(a args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.Config != "" {
		cfg, err = config.LoadFile(a.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if a.BPM != 0 {
		cfg.BPM = a.BPM
	}
	if a.Port != "" {
		cfg.Port = a.Port
	}
	if a.Play {
		cfg.Autoplay = true
	}
	return cfg, cfg.Validate()
}
