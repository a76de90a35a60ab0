package eloop

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func newLoop(t *testing.T) *Loop {
	t.Helper()
	l, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestIdleCoalesces(t *testing.T) {
	l := newLoop(t)
	idle := NewIdle()
	calls := 0
	fn := func(i *Idle) {
		l.RemoveIdle(i)
		calls++
	}
	if err := l.AddIdle(idle, fn); err != nil {
		t.Fatalf("AddIdle error: %v", err)
	}
	if err := l.AddIdle(idle, fn); !errors.Is(err, ErrAlreadyScheduled) {
		t.Fatalf("expected ErrAlreadyScheduled, got %v", err)
	}
	if err := l.Dispatch(0); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 idle call, got %d", calls)
	}
	// slot removed itself; it must not fire again
	if err := l.Dispatch(0); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("idle fired again after self-removal: %d calls", calls)
	}
}

func TestIdleRepeatsUntilRemoved(t *testing.T) {
	l := newLoop(t)
	idle := NewIdle()
	calls := 0
	if err := l.AddIdle(idle, func(i *Idle) { calls++ }); err != nil {
		t.Fatalf("AddIdle error: %v", err)
	}
	l.Dispatch(0)
	l.Dispatch(0)
	if calls != 2 {
		t.Fatalf("expected idle to repeat while registered, got %d calls", calls)
	}
	l.RemoveIdle(idle)
	l.Dispatch(0)
	if calls != 2 {
		t.Fatalf("idle fired after removal: %d calls", calls)
	}
}

func TestFdReadiness(t *testing.T) {
	l := newLoop(t)
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe error: %v", err)
	}
	defer r.Close()
	defer w.Close()

	var got []byte
	fw, err := l.AddFd(int(r.Fd()), func(fd int) {
		buf := make([]byte, 16)
		n, rerr := unix.Read(fd, buf)
		if rerr != nil {
			t.Errorf("read error: %v", rerr)
			return
		}
		got = append(got, buf[:n]...)
	})
	if err != nil {
		t.Fatalf("AddFd error: %v", err)
	}

	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if err := l.Dispatch(2 * time.Second); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("expected %q delivered, got %q", "hi", got)
	}

	// after removal nothing is delivered
	l.RemoveFd(fw)
	w.Write([]byte("more"))
	if err := l.Dispatch(10 * time.Millisecond); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("removed watch still delivered data: %q", got)
	}
}

func TestSignalDelivery(t *testing.T) {
	l := newLoop(t)
	fired := 0
	s, err := l.AddSignal(syscall.SIGUSR1, func(os.Signal) { fired++ })
	if err != nil {
		t.Fatalf("AddSignal error: %v", err)
	}
	defer l.RemoveSignal(s)

	if err := unix.Kill(unix.Getpid(), unix.SIGUSR1); err != nil {
		t.Fatalf("kill error: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for fired == 0 && time.Now().Before(deadline) {
		if err := l.Dispatch(100 * time.Millisecond); err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
	}
	if fired != 1 {
		t.Fatalf("expected 1 signal callback, got %d", fired)
	}
}

func TestDispatchTimeout(t *testing.T) {
	l := newLoop(t)
	start := time.Now()
	if err := l.Dispatch(20 * time.Millisecond); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Dispatch did not honor timeout, took %v", elapsed)
	}
}
