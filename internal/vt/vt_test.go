package vt

import (
	"testing"

	"vtcon/internal/eloop"
)

func TestNullControllerReportsForegroundOnce(t *testing.T) {
	loop, err := eloop.New()
	if err != nil {
		t.Fatalf("eloop.New error: %v", err)
	}
	defer loop.Close()

	c := newNullController()
	var actions []Action
	if err := c.Open(loop, func(a Action) bool {
		actions = append(actions, a)
		return true
	}); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("Open must not deliver synchronously, got %v", actions)
	}

	loop.Dispatch(0)
	loop.Dispatch(0)
	if len(actions) != 1 || actions[0] != Enter {
		t.Fatalf("expected a single Enter, got %v", actions)
	}
	c.Close()
}

func TestNullControllerCloseBeforeDispatch(t *testing.T) {
	loop, err := eloop.New()
	if err != nil {
		t.Fatalf("eloop.New error: %v", err)
	}
	defer loop.Close()

	c := newNullController()
	fired := false
	if err := c.Open(loop, func(Action) bool { fired = true; return true }); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	c.Close()
	loop.Dispatch(0)
	if fired {
		t.Fatalf("callback fired after Close")
	}
}
