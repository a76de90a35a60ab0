package app

import (
	"errors"

	"vtcon/internal/eloop"
	"vtcon/internal/system"
	"vtcon/internal/video"
	"vtcon/internal/vt"
)

// scheduleDraw requests one idle repaint. A slot that is already pending
// coalesces the request; any other scheduling failure costs at most one
// frame and the next trigger retries.
func (h *harness) scheduleDraw() {
	err := h.loop.AddIdle(h.idle, h.draw)
	if err != nil && !errors.Is(err, eloop.ErrAlreadyScheduled) {
		system.Logger.Warn("cannot schedule draw function", "err", err)
	}
}

func (h *harness) draw(idle *eloop.Idle) {
	h.loop.RemoveIdle(idle)
	h.mapOutputs()
}

// mapOutputs paints the console onto every active output. Nothing is
// touched while the device sleeps. Each output gets a transient scan-out
// screen for exactly one present cycle, so no display-to-screen list has
// to be kept in sync with hotplug or VT switches. A failing output is
// skipped; the rest still present.
func (h *harness) mapOutputs() {
	if !h.video.IsAwake() {
		return
	}
	for _, d := range h.video.Displays() {
		if d.State() != video.StateActive {
			continue
		}
		scr, err := h.video.NewScreen(d)
		if err != nil {
			system.Logger.Debug("cannot create scan-out screen", "err", err)
			continue
		}
		h.shader.Viewport(scr)
		h.con.Map(h.shader, scr)
		if err := scr.Swap(); err != nil {
			system.Logger.Debug("cannot swap screen", "err", err)
		}
		scr.Close()
	}
}

// vtSwitch handles enter/leave notifications. The switch is acknowledged
// unconditionally: a display failure must never block the VT subsystem.
func (h *harness) vtSwitch(action vt.Action) bool {
	if h.video == nil {
		// the controller can fire before the device is acquired
		return true
	}
	if action == vt.Enter {
		if err := h.video.Wake(); err != nil {
			system.Logger.Warn("cannot wake up video device", "err", err)
		} else {
			h.activateOutputs()
		}
	} else {
		h.video.Sleep()
	}
	return true
}

// activateOutputs brings every inactive output up with a display-chosen
// mode, recomputes the tallest panel height and resizes the console's
// row budget to it. Activation failures skip only the failing output.
func (h *harness) activateOutputs() {
	h.maxPanelHeight = 0
	for _, d := range h.video.Displays() {
		if d.State() == video.StateInactive {
			if err := d.Activate(nil); err != nil {
				system.Logger.Warn("cannot activate display", "err", err)
				continue
			}
		}
		if y := d.CurrentMode().Height; y > h.maxPanelHeight {
			h.maxPanelHeight = y
		}
	}

	h.con.Resize(0, 0, h.maxPanelHeight)
	h.scheduleDraw()
}
