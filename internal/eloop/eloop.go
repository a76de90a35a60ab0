// Package eloop implements a single-threaded event reactor. Callers
// register OS signals, readable file descriptors and one-shot idle
// callbacks, then drive the loop with Dispatch. Callbacks only ever run
// inside Dispatch, so loop owners need no locking around the state their
// callbacks touch.
package eloop

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// ErrAlreadyScheduled is returned by AddIdle when the idle slot is still
// pending. Callers that only want to coalesce work treat it as success.
var ErrAlreadyScheduled = errors.New("idle callback already scheduled")

// Loop multiplexes signal delivery, fd readiness and idle work over a
// single poll call. A wake pipe lets signal forwarders interrupt a
// blocking Dispatch.
type Loop struct {
	wakeR, wakeW int

	signals []*Signal
	fds     []*Fd
	idles   []*Idle
}

// New creates an empty loop.
func New() (*Loop, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &Loop{wakeR: p[0], wakeW: p[1]}, nil
}

// Close releases the loop's wake pipe. Registrations still held by the
// owner must be removed before Close.
func (l *Loop) Close() {
	unix.Close(l.wakeR)
	unix.Close(l.wakeW)
	l.wakeR, l.wakeW = -1, -1
}

// wake interrupts a blocking Dispatch. A full pipe means a wakeup is
// already queued, so EAGAIN is fine.
func (l *Loop) wake() {
	var b [1]byte
	unix.Write(l.wakeW, b[:])
}

func (l *Loop) drainWake() {
	var buf [64]byte
	for {
		n, err := unix.Read(l.wakeR, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

// Dispatch blocks until at least one registered source is ready, runs the
// callbacks of every source ready at that moment, and returns. A pending
// idle callback turns the wait into a poll with zero timeout. A negative
// timeout blocks until an event arrives. An interrupted poll is not an
// error; any other poll failure is fatal to the caller's loop.
func (l *Loop) Dispatch(timeout time.Duration) error {
	pfds := make([]unix.PollFd, 1, len(l.fds)+1)
	pfds[0] = unix.PollFd{Fd: int32(l.wakeR), Events: unix.POLLIN}
	watched := make([]*Fd, 0, len(l.fds))
	for _, f := range l.fds {
		pfds = append(pfds, unix.PollFd{Fd: int32(f.fd), Events: unix.POLLIN})
		watched = append(watched, f)
	}

	ms := -1
	switch {
	case len(l.idles) > 0:
		ms = 0
	case timeout >= 0:
		ms = int(timeout / time.Millisecond)
	}

	n, err := unix.Poll(pfds, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return err
	}

	if n > 0 {
		if pfds[0].Revents != 0 {
			l.drainWake()
		}
		for i, f := range watched {
			if pfds[i+1].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
				continue
			}
			// A previous callback may have unregistered this fd.
			if !l.hasFd(f) {
				continue
			}
			f.fn(f.fd)
		}
	}

	for _, s := range append([]*Signal(nil), l.signals...) {
		if s.pending.Swap(false) && l.hasSignal(s) {
			s.fn(s.sig)
		}
	}

	for _, i := range append([]*Idle(nil), l.idles...) {
		if i.pending && i.fn != nil {
			i.fn(i)
		}
	}
	return nil
}

func (l *Loop) hasFd(f *Fd) bool {
	for _, x := range l.fds {
		if x == f {
			return true
		}
	}
	return false
}

func (l *Loop) hasSignal(s *Signal) bool {
	for _, x := range l.signals {
		if x == s {
			return true
		}
	}
	return false
}
