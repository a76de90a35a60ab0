//go:build linux

package vt

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"vtcon/internal/eloop"
	"vtcon/internal/system"
)

// VT ioctl interface of the Linux console (linux/vt.h).
const (
	vtGetState = 0x5603
	vtRelDisp  = 0x5605
	vtSetMode  = 0x5602

	vtModeAuto    = 0x00
	vtModeProcess = 0x01
	vtAckAcq      = 0x02
)

type vtMode struct {
	Mode   int8
	Waitv  int8
	Relsig int16
	Acqsig int16
	Frsig  int16
}

type vtState struct {
	Active uint16
	Signal uint16
	State  uint16
}

// linuxController drives the kernel VT switch protocol: the console
// layer raises SIGUSR1 when another VT wants the hardware and SIGUSR2
// when it is handed back, and every switch must be acknowledged with
// VT_RELDISP.
type linuxController struct {
	fd   int
	loop *eloop.Loop
	cb   Callback
	rel  *eloop.Signal
	acq  *eloop.Signal
	idle *eloop.Idle
}

func newLinuxController() (*linuxController, error) {
	fd, err := unix.Open("/dev/tty", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	var st vtState
	if err := ioctlPtr(fd, vtGetState, unsafe.Pointer(&st)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("not a virtual terminal: %w", err)
	}
	return &linuxController{fd: fd, idle: eloop.NewIdle()}, nil
}

func (c *linuxController) Open(loop *eloop.Loop, cb Callback) error {
	c.loop = loop
	c.cb = cb

	rel, err := loop.AddSignal(syscall.SIGUSR1, c.onRelease)
	if err != nil {
		return err
	}
	c.rel = rel
	acq, err := loop.AddSignal(syscall.SIGUSR2, c.onAcquire)
	if err != nil {
		loop.RemoveSignal(c.rel)
		return err
	}
	c.acq = acq

	mode := vtMode{
		Mode:   vtModeProcess,
		Relsig: int16(syscall.SIGUSR1),
		Acqsig: int16(syscall.SIGUSR2),
	}
	if err := ioctlPtr(c.fd, vtSetMode, unsafe.Pointer(&mode)); err != nil {
		loop.RemoveSignal(c.acq)
		loop.RemoveSignal(c.rel)
		return fmt.Errorf("cannot take over VT switching: %w", err)
	}

	// We already own the foreground when the slot opens; report it once
	// the loop runs so the owner has finished its setup.
	return loop.AddIdle(c.idle, func(i *eloop.Idle) {
		loop.RemoveIdle(i)
		cb(Enter)
	})
}

func (c *linuxController) onRelease(os.Signal) {
	ack := 0
	if c.cb(Leave) {
		ack = 1
	}
	if err := ioctlInt(c.fd, vtRelDisp, ack); err != nil {
		system.Logger.Warn("cannot release VT", "err", err)
	}
}

func (c *linuxController) onAcquire(os.Signal) {
	if err := ioctlInt(c.fd, vtRelDisp, vtAckAcq); err != nil {
		system.Logger.Warn("cannot acknowledge VT acquisition", "err", err)
	}
	c.cb(Enter)
}

func (c *linuxController) Close() {
	if c.loop != nil {
		c.loop.RemoveIdle(c.idle)
		mode := vtMode{Mode: vtModeAuto}
		ioctlPtr(c.fd, vtSetMode, unsafe.Pointer(&mode))
		c.loop.RemoveSignal(c.acq)
		c.loop.RemoveSignal(c.rel)
		c.loop = nil
	}
	unix.Close(c.fd)
}

func ioctlPtr(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlInt(fd int, req uintptr, arg int) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
