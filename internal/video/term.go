package video

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// termDevice presents the controlling terminal as a single-output display
// device. Wake enters the tcell screen, sleep leaves it, so a VT switch
// hands the terminal back untouched.
type termDevice struct {
	screen  tcell.Screen
	awake   bool
	display *termDisplay
}

func newTermDevice() (*termDevice, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	d := &termDevice{screen: s}
	d.display = &termDisplay{dev: d}
	return d, nil
}

func (d *termDevice) IsAwake() bool { return d.awake }

func (d *termDevice) Wake() error {
	if d.awake {
		return nil
	}
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.awake = true
	return nil
}

func (d *termDevice) Sleep() {
	if !d.awake {
		return
	}
	d.screen.Fini()
	d.awake = false
	d.display.state = StateInactive
}

func (d *termDevice) Displays() []Display {
	return []Display{d.display}
}

func (d *termDevice) NewScreen(disp Display) (Screen, error) {
	if disp != Display(d.display) {
		return nil, errors.New("video: foreign display")
	}
	if !d.awake {
		return nil, errors.New("video: device is asleep")
	}
	return &termScreen{dev: d}, nil
}

func (d *termDevice) Close() {
	if d.awake {
		d.screen.Fini()
		d.awake = false
	}
}

type termDisplay struct {
	dev   *termDevice
	state DisplayState
}

func (t *termDisplay) State() DisplayState { return t.state }

func (t *termDisplay) Activate(mode *Mode) error {
	if !t.dev.awake {
		return errors.New("video: device is asleep")
	}
	t.state = StateActive
	return nil
}

func (t *termDisplay) CurrentMode() Mode {
	w, h := t.dev.screen.Size()
	return Mode{Width: w * simCellW, Height: h * simCellH}
}

type termScreen struct {
	dev *termDevice
}

func (s *termScreen) Size() (int, int) {
	return s.dev.screen.Size()
}

func (s *termScreen) SetCell(x, y int, r rune, style tcell.Style) {
	s.dev.screen.SetContent(x, y, r, nil, style)
}

func (s *termScreen) Swap() error {
	s.dev.screen.Show()
	return nil
}

func (s *termScreen) Close() {}
