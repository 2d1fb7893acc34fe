package input

import (
	"time"

	"macropad-go/services/input/keys"
)

// Sink executes output events against the HID transport.
type Sink interface {
	KeyDown(k keys.Code) error
	KeyUp(k keys.Code) error
	Scroll(delta int) error
	SendControlCode(c keys.Control) error
}

// Exec is the handle an Action runs against. It is only valid during
// Do and inside the functions Do defers.
type Exec struct {
	c     *Controller
	owner *slot
	now   time.Time
}

func (x *Exec) KeyDown(k keys.Code) error { return x.c.out().KeyDown(k) }
func (x *Exec) KeyUp(k keys.Code) error   { return x.c.out().KeyUp(k) }
func (x *Exec) Scroll(delta int) error    { return x.c.out().Scroll(delta) }

// Control sends a consumer control code.
func (x *Exec) Control(c keys.Control) error { return x.c.out().SendControlCode(c) }

// After schedules fn to run d after the dispatching tick. Deferred work
// of a binding runs before that binding dispatches again.
func (x *Exec) After(d time.Duration, fn func() error) {
	x.c.sched.add(x.owner, x.now.Add(d), fn)
}

func (x *Exec) Now() time.Time     { return x.now }
func (x *Exec) Settings() Settings { return x.c.set }
func (x *Exec) DryRun() bool       { return x.c.set.DryRun }
func (x *Exec) Label() string      { return x.owner.label }

type nopSink struct{}

func (nopSink) KeyDown(keys.Code) error            { return nil }
func (nopSink) KeyUp(keys.Code) error              { return nil }
func (nopSink) Scroll(int) error                   { return nil }
func (nopSink) SendControlCode(keys.Control) error { return nil }
