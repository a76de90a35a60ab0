package eloop

import "golang.org/x/sys/unix"

// Fd is a readability watch on one file descriptor.
type Fd struct {
	fd int
	fn func(fd int)
}

// AddFd registers fn to run inside Dispatch whenever fd becomes readable.
// The descriptor is switched to non-blocking mode so the callback's read
// can never stall the loop.
func (l *Loop) AddFd(fd int, fn func(fd int)) (*Fd, error) {
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, err
	}
	f := &Fd{fd: fd, fn: fn}
	l.fds = append(l.fds, f)
	return f, nil
}

// RemoveFd drops the watch. Safe to call with nil and from inside the
// watch's own callback.
func (l *Loop) RemoveFd(f *Fd) {
	if f == nil {
		return
	}
	for i, x := range l.fds {
		if x == f {
			l.fds = append(l.fds[:i], l.fds[i+1:]...)
			return
		}
	}
}
