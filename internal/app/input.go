package app

import (
	"golang.org/x/sys/unix"

	"vtcon/internal/system"
)

// onInput drains up to one chunk from the input descriptor into the
// console. Read errors are transient and keep the watch registered;
// end-of-input removes the watch for good. Mutating the buffer is all
// this callback does to visible state besides requesting a repaint.
func (h *harness) onInput(fd int) {
	n, err := unix.Read(fd, h.readBuf[:])
	if err != nil {
		if err != unix.EAGAIN && err != unix.EINTR {
			system.Logger.Info("stdin read error", "err", err)
		}
		return
	}
	if n == 0 {
		system.Logger.Info("stdin closed")
		h.loop.RemoveFd(h.stdin)
		h.stdin = nil
		return
	}

	system.Logger.Debug("stdin input read", "len", n)
	h.writeBytes(h.readBuf[:n])
	h.scheduleDraw()
}
