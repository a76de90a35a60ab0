// Package video abstracts the display hardware: a device that can sleep
// and wake, the outputs it drives, and transient scan-out screens used
// for exactly one presentation cycle. Two backends exist: a tcell-backed
// terminal device and an in-memory simulated device.
package video

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"vtcon/internal/system"
)

// DisplayState describes one output's activation state.
type DisplayState int

const (
	StateInactive DisplayState = iota
	StateActive
	StatePending
	StateDisconnected
)

func (s DisplayState) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StatePending:
		return "pending"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Mode is one display resolution in pixels.
type Mode struct {
	Width  int
	Height int
}

// Display is one physical output of a device.
type Display interface {
	State() DisplayState
	// Activate enables the output. A nil mode requests a display-chosen
	// default.
	Activate(mode *Mode) error
	CurrentMode() Mode
}

// Screen is a transient scan-out target bound to one display. It is
// constructed per frame, painted, swapped and released.
type Screen interface {
	// Size returns the target's dimensions in character cells.
	Size() (w, h int)
	SetCell(x, y int, r rune, style tcell.Style)
	// Swap presents the painted frame on the output.
	Swap() error
	Close()
}

// Device is the whole display subsystem. No enumeration, activation or
// presentation may happen while the device is asleep.
type Device interface {
	IsAwake() bool
	Wake() error
	Sleep()
	Displays() []Display
	NewScreen(d Display) (Screen, error)
	Close()
}

// Open creates a device for the named backend. "auto" (or empty) tries
// the terminal backend first and falls back to the simulated one, so the
// harness stays usable on headless systems.
func Open(kind string) (Device, error) {
	switch kind {
	case "sim":
		return NewSim(defaultSimConfig()), nil
	case "term":
		return newTermDevice()
	case "", "auto":
		d, err := newTermDevice()
		if err != nil {
			system.Logger.Info("no terminal available, using simulated output", "err", err)
			return NewSim(defaultSimConfig()), nil
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown video backend %q", kind)
}

func defaultSimConfig() SimConfig {
	return SimConfig{Outputs: []SimOutput{{Width: 1024, Height: 768}}}
}
