package eloop

// Idle is a one-shot slot for deferred work. Scheduling an already
// pending slot yields ErrAlreadyScheduled, which makes repeated requests
// within one dispatch cycle coalesce into a single callback run. The
// callback must remove the slot itself if it does not want to run again
// on the next dispatch.
type Idle struct {
	pending bool
	fn      func(*Idle)
}

// NewIdle creates an unscheduled idle slot.
func NewIdle() *Idle {
	return &Idle{}
}

// AddIdle schedules fn to run on the next dispatch iteration.
func (l *Loop) AddIdle(i *Idle, fn func(*Idle)) error {
	if i.pending {
		return ErrAlreadyScheduled
	}
	i.pending = true
	i.fn = fn
	l.idles = append(l.idles, i)
	return nil
}

// RemoveIdle cancels a pending slot. Safe to call with nil, with an
// unscheduled slot, and from inside the slot's own callback.
func (l *Loop) RemoveIdle(i *Idle) {
	if i == nil || !i.pending {
		return
	}
	i.pending = false
	i.fn = nil
	for x, cur := range l.idles {
		if cur == i {
			l.idles = append(l.idles[:x], l.idles[x+1:]...)
			return
		}
	}
}
