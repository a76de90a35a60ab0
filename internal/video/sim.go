package video

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// Cell metrics mirrored from internal/font so simulated modes map to the
// same row math as real outputs.
const (
	simCellW = 8
	simCellH = 16
)

// SimOutput configures one simulated display.
type SimOutput struct {
	Width  int
	Height int
	// State is the initial display state; the zero value is inactive.
	State DisplayState
	// FailActivate makes Activate fail.
	FailActivate bool
	// FailScreen makes scan-out construction for this display fail.
	FailScreen bool
}

// SimConfig configures a simulated device.
type SimConfig struct {
	Outputs []SimOutput
	// WakeErr, when set, makes Wake fail and leaves the device asleep.
	WakeErr error
}

// Sim is an in-memory display device. It records every call a test may
// want to assert on.
type Sim struct {
	awake    bool
	displays []*SimDisplay

	WakeCalls   int
	SleepCalls  int
	EnumCalls   int
	ScreenCalls int
	Closed      bool

	wakeErr error
}

// NewSim creates a simulated device. It starts asleep.
func NewSim(cfg SimConfig) *Sim {
	s := &Sim{wakeErr: cfg.WakeErr}
	for _, out := range cfg.Outputs {
		s.displays = append(s.displays, &SimDisplay{cfg: out, state: out.State})
	}
	return s
}

func (s *Sim) IsAwake() bool { return s.awake }

func (s *Sim) Wake() error {
	s.WakeCalls++
	if s.wakeErr != nil {
		return s.wakeErr
	}
	s.awake = true
	return nil
}

func (s *Sim) Sleep() {
	s.SleepCalls++
	s.awake = false
}

func (s *Sim) Displays() []Display {
	s.EnumCalls++
	out := make([]Display, len(s.displays))
	for i, d := range s.displays {
		out[i] = d
	}
	return out
}

func (s *Sim) NewScreen(d Display) (Screen, error) {
	s.ScreenCalls++
	sd, ok := d.(*SimDisplay)
	if !ok {
		return nil, errors.New("sim: foreign display")
	}
	if sd.cfg.FailScreen {
		return nil, errors.New("sim: no scan-out buffer")
	}
	return &simScreen{d: sd}, nil
}

func (s *Sim) Close() {
	s.awake = false
	s.Closed = true
}

// Output returns the i-th simulated display for assertions.
func (s *Sim) Output(i int) *SimDisplay { return s.displays[i] }

// SimDisplay is one simulated output.
type SimDisplay struct {
	cfg   SimOutput
	state DisplayState

	Activations int
	Swaps       int
	Painted     int
}

func (d *SimDisplay) State() DisplayState { return d.state }

func (d *SimDisplay) Activate(mode *Mode) error {
	d.Activations++
	if d.cfg.FailActivate {
		return errors.New("sim: activation failed")
	}
	d.state = StateActive
	return nil
}

func (d *SimDisplay) CurrentMode() Mode {
	return Mode{Width: d.cfg.Width, Height: d.cfg.Height}
}

type simScreen struct {
	d *SimDisplay
}

func (s *simScreen) Size() (int, int) {
	return s.d.cfg.Width / simCellW, s.d.cfg.Height / simCellH
}

func (s *simScreen) SetCell(x, y int, r rune, style tcell.Style) {
	s.d.Painted++
}

func (s *simScreen) Swap() error {
	s.d.Swaps++
	return nil
}

func (s *simScreen) Close() {}
