package eloop

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Signal is a registration for one OS signal. Delivery is forwarded from
// the runtime's notification channel onto the loop: the forwarder only
// marks the registration pending and wakes the poll, the callback itself
// runs inside Dispatch.
type Signal struct {
	loop    *Loop
	sig     os.Signal
	fn      func(os.Signal)
	ch      chan os.Signal
	quit    chan struct{}
	pending atomic.Bool
}

// AddSignal registers fn to run inside Dispatch whenever sig is delivered.
func (l *Loop) AddSignal(sig os.Signal, fn func(os.Signal)) (*Signal, error) {
	s := &Signal{
		loop: l,
		sig:  sig,
		fn:   fn,
		ch:   make(chan os.Signal, 1),
		quit: make(chan struct{}),
	}
	signal.Notify(s.ch, sig)
	go s.forward()
	l.signals = append(l.signals, s)
	return s, nil
}

// RemoveSignal stops delivery for s. Safe to call with nil.
func (l *Loop) RemoveSignal(s *Signal) {
	if s == nil {
		return
	}
	signal.Stop(s.ch)
	close(s.quit)
	for i, x := range l.signals {
		if x == s {
			l.signals = append(l.signals[:i], l.signals[i+1:]...)
			break
		}
	}
}

func (s *Signal) forward() {
	for {
		select {
		case <-s.quit:
			return
		case <-s.ch:
			s.pending.Store(true)
			s.loop.wake()
		}
	}
}
