// Package app wires the reactor, the console buffer, the display device
// and the VT controller into one harness: stdin bytes land in the
// console, an idle callback repaints every active output, and VT
// switches suspend and resume all hardware access.
package app

import (
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"vtcon/internal/console"
	"vtcon/internal/eloop"
	"vtcon/internal/font"
	"vtcon/internal/render"
	"vtcon/internal/system"
	"vtcon/internal/video"
	"vtcon/internal/vt"
)

// readChunk is how much stdin is consumed per readiness callback.
const readChunk = 512

const defaultDispatchTimeout = 500 * time.Millisecond

// terminate is the process-wide shutdown flag. Signal callbacks are its
// only writers, the run loop its only reader; it is never reset.
var terminate atomic.Bool

// Config overrides the harness collaborators. Zero values mean stdin,
// the backend chosen by Backend ("auto" when empty), the platform VT
// controller and a bounded dispatch wait.
type Config struct {
	Input           *os.File
	Video           video.Device
	VT              vt.Controller
	Backend         string
	DispatchTimeout time.Duration
}

const greeting = "vtcon - virtual terminal console\n" +
	"Everything read from stdin is copied onto all connected outputs, " +
	"so arbitrary text can be displayed like this:\n" +
	"    ls -la / | sudo vtcon\n" +
	"Root rights are needed to reach the VT subsystem. Without VT access " +
	"the output falls back to the current terminal.\n\n"

// harness owns every collaborator. All fields are touched only from
// reactor callbacks or from the setup/teardown path.
type harness struct {
	loop    *eloop.Loop
	sigTerm *eloop.Signal
	sigInt  *eloop.Signal
	stdin   *eloop.Fd
	st      *font.SymbolTable
	ff      *font.Factory
	vtc     vt.Controller
	video   video.Device
	shader  *render.Renderer
	con     *console.Buffer
	idle    *eloop.Idle

	input          *os.File
	readBuf        [readChunk]byte
	maxPanelHeight int

	ledger []resource
}

// resource is one entry of the acquisition ledger. Teardown walks the
// ledger backwards, so release order always mirrors acquisition order
// without a hand-maintained destroy function.
type resource struct {
	name    string
	release func()
}

func (h *harness) acquired(name string, release func()) {
	h.ledger = append(h.ledger, resource{name: name, release: release})
}

// teardown releases everything acquired so far, newest first. It is
// idempotent: a second call finds an empty ledger.
func (h *harness) teardown() {
	for i := len(h.ledger) - 1; i >= 0; i-- {
		h.ledger[i].release()
	}
	h.ledger = nil
}

func (h *harness) setup(cfg Config) error {
	fail := func(err error) error {
		h.teardown()
		return err
	}

	loop, err := eloop.New()
	if err != nil {
		return err
	}
	h.loop = loop
	h.acquired("event loop", func() { loop.Close(); h.loop = nil })

	h.sigTerm, err = loop.AddSignal(syscall.SIGTERM, onTerminate)
	if err != nil {
		return fail(err)
	}
	h.acquired("SIGTERM watch", func() { loop.RemoveSignal(h.sigTerm); h.sigTerm = nil })

	h.sigInt, err = loop.AddSignal(syscall.SIGINT, onTerminate)
	if err != nil {
		return fail(err)
	}
	h.acquired("SIGINT watch", func() { loop.RemoveSignal(h.sigInt); h.sigInt = nil })

	h.input = cfg.Input
	if h.input == nil {
		h.input = os.Stdin
	}
	h.stdin, err = loop.AddFd(int(h.input.Fd()), h.onInput)
	if err != nil {
		return fail(err)
	}
	h.acquired("input watch", func() {
		// end-of-input may have removed the watch already
		if h.stdin != nil {
			loop.RemoveFd(h.stdin)
			h.stdin = nil
		}
	})

	h.st = font.NewSymbolTable()
	h.acquired("symbol table", func() { h.st = nil })

	h.ff, err = font.NewFactory(h.st)
	if err != nil {
		return fail(err)
	}
	h.acquired("font factory", func() { h.ff = nil })

	h.vtc = cfg.VT
	if h.vtc == nil {
		h.vtc = vt.NewController()
	}
	if err = h.vtc.Open(loop, h.vtSwitch); err != nil {
		return fail(err)
	}
	h.acquired("vt controller", func() { h.vtc.Close() })

	h.video = cfg.Video
	if h.video == nil {
		h.video, err = video.Open(cfg.Backend)
		if err != nil {
			return fail(err)
		}
	}
	h.acquired("video device", func() { h.video.Close() })

	h.shader, err = render.NewRenderer()
	if err != nil {
		return fail(err)
	}
	h.acquired("renderer", func() { h.shader.Close(); h.shader = nil })

	h.con, err = console.New(h.ff)
	if err != nil {
		return fail(err)
	}
	h.acquired("console buffer", func() { h.con.Close(); h.con = nil })

	h.idle = eloop.NewIdle()
	h.acquired("idle slot", func() { loop.RemoveIdle(h.idle) })

	return nil
}

func onTerminate(os.Signal) {
	terminate.Store(true)
}

// writeBytes feeds raw bytes into the console, one cell per byte. No
// character-set decoding and no escape handling happens here.
func (h *harness) writeBytes(p []byte) {
	for _, b := range p {
		if b == '\n' {
			h.con.Newline()
		} else {
			h.con.Write(h.st.Symbol(rune(b)))
		}
	}
}

// Run sets up the harness, copies stdin onto the outputs until a
// termination signal or a dispatch failure, and tears everything down
// again. The returned error is nil on clean shutdown.
func Run(cfg Config) error {
	h := &harness{}
	if err := h.setup(cfg); err != nil {
		system.Logger.Error("cannot set up the event loop", "err", err)
		return err
	}

	system.Logger.Info("starting console")

	h.writeBytes([]byte(greeting))
	h.scheduleDraw()

	timeout := cfg.DispatchTimeout
	if timeout == 0 {
		timeout = defaultDispatchTimeout
	}

	var err error
	for !terminate.Load() {
		if err = h.loop.Dispatch(timeout); err != nil {
			break
		}
	}

	system.Logger.Info("stopping console")
	h.teardown()
	return err
}
