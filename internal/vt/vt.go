// Package vt arbitrates ownership of one virtual terminal slot. The
// controller delivers enter/leave notifications into the reactor; the
// registered callback acknowledges every switch with its boolean result.
package vt

import (
	"vtcon/internal/eloop"
	"vtcon/internal/system"
)

// Action is a VT switch notification.
type Action int

const (
	// Enter means this process now owns the display hardware.
	Enter Action = iota
	// Leave means another VT is taking over.
	Leave
)

func (a Action) String() string {
	if a == Enter {
		return "enter"
	}
	return "leave"
}

// Callback handles one switch notification. The return value is the
// acknowledgment handed back to the VT subsystem.
type Callback func(action Action) bool

// Controller owns one VT slot.
type Controller interface {
	// Open acquires the slot and registers cb. Notifications are
	// delivered through loop, never from Open itself.
	Open(loop *eloop.Loop, cb Callback) error
	Close()
}

// NewController returns a real VT controller when the process controls a
// virtual terminal, and a null controller otherwise. The null controller
// simply reports foreground once and never switches.
func NewController() Controller {
	c, err := newLinuxController()
	if err != nil {
		system.Logger.Debug("no VT available, using null controller", "err", err)
		return newNullController()
	}
	return c
}
