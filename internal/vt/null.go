package vt

import "vtcon/internal/eloop"

// nullController is the fallback when no VT is available. It reports a
// single Enter on the first dispatch after Open, which mirrors owning the
// foreground at acquisition time, and never delivers Leave.
type nullController struct {
	loop *eloop.Loop
	idle *eloop.Idle
}

func newNullController() *nullController {
	return &nullController{idle: eloop.NewIdle()}
}

func (c *nullController) Open(loop *eloop.Loop, cb Callback) error {
	c.loop = loop
	return loop.AddIdle(c.idle, func(i *eloop.Idle) {
		loop.RemoveIdle(i)
		cb(Enter)
	})
}

func (c *nullController) Close() {
	if c.loop != nil {
		c.loop.RemoveIdle(c.idle)
		c.loop = nil
	}
}
