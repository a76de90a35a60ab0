package video

import (
	"errors"
	"testing"
)

func TestSimWakeSleep(t *testing.T) {
	s := NewSim(SimConfig{Outputs: []SimOutput{{Width: 800, Height: 600}}})
	if s.IsAwake() {
		t.Fatalf("device must start asleep")
	}
	if err := s.Wake(); err != nil {
		t.Fatalf("Wake error: %v", err)
	}
	if !s.IsAwake() {
		t.Fatalf("device awake after Wake")
	}
	s.Sleep()
	if s.IsAwake() {
		t.Fatalf("device still awake after Sleep")
	}
	if s.WakeCalls != 1 || s.SleepCalls != 1 {
		t.Fatalf("call counts wake=%d sleep=%d", s.WakeCalls, s.SleepCalls)
	}
}

func TestSimWakeFailureStaysAsleep(t *testing.T) {
	s := NewSim(SimConfig{WakeErr: errors.New("no power")})
	if err := s.Wake(); err == nil {
		t.Fatalf("expected wake failure")
	}
	if s.IsAwake() {
		t.Fatalf("device must stay asleep after failed wake")
	}
}

func TestSimActivate(t *testing.T) {
	s := NewSim(SimConfig{Outputs: []SimOutput{
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 720, FailActivate: true},
	}})
	s.Wake()
	disps := s.Displays()
	if err := disps[0].Activate(nil); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if disps[0].State() != StateActive {
		t.Fatalf("state = %v, want active", disps[0].State())
	}
	if err := disps[1].Activate(nil); err == nil {
		t.Fatalf("expected activation failure")
	}
	if disps[1].State() != StateInactive {
		t.Fatalf("failed activation changed state to %v", disps[1].State())
	}
	if m := disps[0].CurrentMode(); m.Height != 1080 {
		t.Fatalf("mode height = %d, want 1080", m.Height)
	}
}

func TestSimScreenLifecycle(t *testing.T) {
	s := NewSim(SimConfig{Outputs: []SimOutput{{Width: 640, Height: 480}}})
	s.Wake()
	d := s.Displays()[0]
	scr, err := s.NewScreen(d)
	if err != nil {
		t.Fatalf("NewScreen error: %v", err)
	}
	w, h := scr.Size()
	if w != 640/simCellW || h != 480/simCellH {
		t.Fatalf("screen size = %dx%d cells", w, h)
	}
	if err := scr.Swap(); err != nil {
		t.Fatalf("Swap error: %v", err)
	}
	scr.Close()
	if s.Output(0).Swaps != 1 {
		t.Fatalf("swaps = %d, want 1", s.Output(0).Swaps)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("holographic"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
