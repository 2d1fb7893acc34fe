package input

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"macropad-go/bus"
	"macropad-go/errcode"
	"macropad-go/types"
)

var (
	topicButton  = bus.T("input", "button")
	topicEncoder = bus.T("input", "encoder")
	topicFault   = bus.T("input", "fault")
	topicState   = bus.T("input", "state")
)

// slot is the part every binding shares: identity and fault accounting.
type slot struct {
	label    string
	faults   int
	disabled bool
	lastErr  error
	tainted  bool // deferred work failed during the current tick
}

// Controller owns the bindings and drives the polling loop.
type Controller struct {
	set  Settings
	res  Resolver
	hw   Hardware
	sink Sink
	stop StopSignal
	conn *bus.Connection
	now  func() time.Time

	buttons  []*button
	encoders []*encoder
	sched    scheduler
	encSeq   int
	level    string
}

type Option func(*Controller)

// WithStopSignal makes Run return once s reports a stop request.
func WithStopSignal(s StopSignal) Option { return func(c *Controller) { c.stop = s } }

// WithBus publishes diagnostics under input/... on b.
func WithBus(b *bus.Bus) Option {
	return func(c *Controller) { c.conn = b.NewConnection("input") }
}

// WithClock replaces time.Now for Run.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

// New builds a Controller with no bindings. A nil sink discards output.
func New(set Settings, hw Hardware, sink Sink, opts ...Option) *Controller {
	set = set.normalized()
	c := &Controller{
		set:   set,
		res:   NewResolver(set),
		hw:    hw,
		sink:  sink,
		now:   time.Now,
		level: "idle",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Settings() Settings { return c.set }
func (c *Controller) Resolver() Resolver { return c.res }

func (c *Controller) out() Sink {
	if c.set.DryRun || c.sink == nil {
		return nopSink{}
	}
	return c.sink
}

// ---- configuration ----

// AddButton validates cfg and registers it under label. On error nothing
// changes. An existing button with the same label is replaced in place
// after its pending output is flushed.
func (c *Controller) AddButton(label string, cfg ButtonConfig) error {
	const op = "input.AddButton"
	if label == "" {
		return errcode.New(errcode.InvalidParams, op, "empty label")
	}
	gpio, err := validateButton(c.res, cfg)
	if err != nil {
		return configError(op, label, err)
	}
	b := &button{slot: slot{label: label}, gpio: gpio, cfg: cfg}
	replaced := false
	for i, old := range c.buttons {
		if old.label == label {
			c.drain(&old.slot)
			_ = c.releaseButton(old)
			c.buttons[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		c.buttons = append(c.buttons, b)
	}
	c.publishState(c.now())
	return nil
}

// AddEncoder validates cfg and registers it. An empty label becomes
// "encoder_<n>". Modes without a name are named after their position.
func (c *Controller) AddEncoder(label string, cfg EncoderConfig) error {
	const op = "input.AddEncoder"
	a, b, toggle, err := validateEncoder(c.res, cfg)
	if err != nil {
		if label == "" {
			label = "encoder_" + strconv.Itoa(c.encSeq+1)
		}
		return configError(op, label, err)
	}
	c.encSeq++
	if label == "" {
		label = "encoder_" + strconv.Itoa(c.encSeq)
	}
	modes := make([]Mode, len(cfg.Modes))
	copy(modes, cfg.Modes)
	for i := range modes {
		if modes[i].Name == "" {
			modes[i].Name = "mode_" + strconv.Itoa(i)
		}
	}
	e := &encoder{slot: slot{label: label}, a: a, b: b, toggle: toggle, modes: modes}
	replaced := false
	for i, old := range c.encoders {
		if old.label == label {
			c.drain(&old.slot)
			c.encoders[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		c.encoders = append(c.encoders, e)
	}
	c.publishState(c.now())
	return nil
}

// configError rewrites a validation failure as a ConfigError naming the
// operation and binding.
func configError(op, label string, err error) error {
	var e *errcode.E
	if errors.As(err, &e) {
		return &errcode.E{C: e.C, Op: op, Msg: label + ": " + e.Msg}
	}
	return &errcode.E{C: errcode.Of(err), Op: op, Msg: label, Err: err}
}

// ---- loop ----

// Tick runs deferred work that is due, then every button and every
// encoder once, each in registration order.
func (c *Controller) Tick(now time.Time) {
	for it := c.sched.popDue(now); it != nil; it = c.sched.popDue(now) {
		if err := guard(it.fn); err != nil {
			it.owner.tainted = true
			c.settle(it.owner, err, now)
		}
	}
	for _, b := range c.buttons {
		c.service(&b.slot, func() error { return c.serviceButton(b, now) }, now)
	}
	for _, e := range c.encoders {
		c.service(&e.slot, func() error { return c.serviceEncoder(e, now) }, now)
	}
}

// service runs one binding's tick. A clean pass only resets the fault
// count when none of the binding's deferred work failed earlier in the
// same tick.
func (c *Controller) service(s *slot, fn func() error, now time.Time) {
	tainted := s.tainted
	s.tainted = false
	if s.disabled {
		return
	}
	err := guard(fn)
	if err == nil && tainted {
		return
	}
	c.settle(s, err, now)
}

// Run polls until ctx is done or the stop signal fires, both checked at
// the head of each tick, then releases everything still held. A stop
// request returns nil.
func (c *Controller) Run(ctx context.Context) error {
	c.level = "running"
	c.publishState(c.now())

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		if err := ctx.Err(); err != nil {
			c.Close()
			return err
		}
		if c.stop != nil && c.stop.StopRequested() {
			return c.Close()
		}
		c.Tick(c.now())

		timer.Reset(c.set.Tick)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// Close runs all pending deferred work immediately and releases held
// direct keys.
func (c *Controller) Close() error {
	var errs []error
	for _, it := range c.sched.take(nil) {
		errs = append(errs, guard(it.fn))
	}
	for _, b := range c.buttons {
		errs = append(errs, c.releaseButton(b))
	}
	c.level = "stopped"
	c.publishState(c.now())
	return errors.Join(errs...)
}

// dispatch flushes owner's pending work, then runs act.
func (c *Controller) dispatch(owner *slot, act Action, now time.Time) error {
	var errs []error
	for _, it := range c.sched.take(owner) {
		errs = append(errs, guard(it.fn))
	}
	if err := act.Do(&Exec{c: c, owner: owner, now: now}); err != nil {
		errs = append(errs, &errcode.E{C: errcode.DispatchFailed, Op: owner.label, Msg: act.String(), Err: err})
	}
	return errors.Join(errs...)
}

// drain runs owner's pending work, discarding errors.
func (c *Controller) drain(owner *slot) {
	for _, it := range c.sched.take(owner) {
		_ = guard(it.fn)
	}
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errcode.E{C: errcode.DispatchFailed, Op: "input", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return fn()
}

// settle records the outcome of one unit of work for s. Consecutive
// failures disable the binding at MaxFaults.
func (c *Controller) settle(s *slot, err error, now time.Time) {
	if err == nil {
		s.faults = 0
		return
	}
	s.faults++
	s.lastErr = err
	if s.faults >= c.set.MaxFaults && !s.disabled {
		s.disabled = true
		c.drain(s)
		for _, b := range c.buttons {
			if &b.slot == s {
				_ = c.releaseButton(b)
			}
		}
	}
	if c.conn == nil {
		return
	}
	c.publish(topicFault.Append(s.label), types.FaultEvent{
		Label:    s.label,
		Error:    err.Error(),
		Count:    s.faults,
		Disabled: s.disabled,
		TSms:     now.UnixMilli(),
	}, false)
	if s.disabled {
		c.publishState(now)
	}
}

// ---- diagnostics ----

func (c *Controller) publish(t bus.Topic, payload any, retained bool) {
	if c.conn == nil {
		return
	}
	c.conn.Publish(c.conn.NewMessage(t, payload, retained))
}

func (c *Controller) publishState(now time.Time) {
	if c.conn == nil {
		return
	}
	st := types.InputState{
		Level:    c.level,
		Buttons:  len(c.buttons),
		Encoders: len(c.encoders),
		TSms:     now.UnixMilli(),
	}
	n := 0
	for _, b := range c.buttons {
		if b.disabled {
			n++
		}
	}
	for _, e := range c.encoders {
		if e.disabled {
			n++
		}
	}
	if n > 0 {
		st.Status = strconv.Itoa(n) + " faulted"
	}
	c.publish(topicState, st, true)
}

// ---- inspection ----

func (c *Controller) Buttons() []ButtonInfo {
	out := make([]ButtonInfo, 0, len(c.buttons))
	for _, b := range c.buttons {
		out = append(out, ButtonInfo{Label: b.label, GPIO: b.gpio, Pressed: b.pressed, Faulted: b.disabled})
	}
	return out
}

func (c *Controller) Encoders() []EncoderInfo {
	out := make([]EncoderInfo, 0, len(c.encoders))
	for _, e := range c.encoders {
		out = append(out, EncoderInfo{
			Label:    e.label,
			A:        e.a,
			B:        e.b,
			Toggle:   e.toggle,
			Mode:     e.modes[e.mode].Name,
			Position: e.last,
			Faulted:  e.disabled,
		})
	}
	return out
}

// Mode returns the active mode of encoder label and its index.
func (c *Controller) Mode(label string) (Mode, int, bool) {
	for _, e := range c.encoders {
		if e.label == label {
			return e.modes[e.mode], e.mode, true
		}
	}
	return Mode{}, 0, false
}

// Faulted reports whether the binding named label has been disabled, and
// the last error it saw.
func (c *Controller) Faulted(label string) (bool, error) {
	for _, b := range c.buttons {
		if b.label == label {
			return b.disabled, b.lastErr
		}
	}
	for _, e := range c.encoders {
		if e.label == label {
			return e.disabled, e.lastErr
		}
	}
	return false, nil
}
