package sim

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"macropad-go/errcode"
	"macropad-go/services/input"
	"macropad-go/types"
)

// Player replays a Script into Hardware, calling step once per tick of
// the virtual clock.
type Player struct {
	log      *zap.Logger
	hw       *Hardware
	clock    *Clock
	tick     time.Duration
	step     func(now time.Time)
	encoders map[string][2]int
	paced    bool
}

func NewPlayer(log *zap.Logger, hw *Hardware, clock *Clock, tick time.Duration, step func(now time.Time)) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	if tick <= 0 {
		tick = input.DefaultSettings().Tick
	}
	return &Player{log: log, hw: hw, clock: clock, tick: tick, step: step, encoders: make(map[string][2]int)}
}

// Pace makes Play wait one real tick period between ticks.
func (p *Player) Pace(on bool) { p.paced = on }

// MapEncoder lets script positions keyed by label reach the a/b pair.
func (p *Player) MapEncoder(label string, a, b int) { p.encoders[label] = [2]int{a, b} }

// Play runs from the clock's current time until the last step plus the
// script tail. Steps whose time falls between ticks apply on the next one.
func (p *Player) Play(ctx context.Context, s *Script) error {
	for i, st := range s.Steps {
		for label := range st.Positions {
			if _, ok := p.encoders[label]; !ok {
				return errcode.New(errcode.InvalidParams, "script", "step "+strconv.Itoa(i)+": unknown encoder "+label)
			}
		}
	}
	start := p.clock.Now()
	var endMs int64
	if n := len(s.Steps); n > 0 {
		endMs = s.Steps[n-1].AtMs
	}
	end := start.Add(time.Duration(endMs+s.TailMs) * time.Millisecond)

	next := 0
	for now := start; !now.After(end); now = p.clock.Advance(p.tick) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for next < len(s.Steps) && !start.Add(time.Duration(s.Steps[next].AtMs)*time.Millisecond).After(now) {
			p.apply(s.Steps[next])
			next++
		}
		p.step(now)
		if p.paced {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.tick):
			}
		}
	}
	return nil
}

func (p *Player) apply(st Step) {
	for g, v := range st.Levels {
		p.hw.SetLevel(g, v)
	}
	for label, pos := range st.Positions {
		ab := p.encoders[label]
		p.hw.SetPosition(ab[0], ab[1], pos)
	}
	p.log.Debug("Applied step", zap.Int64("at_ms", st.AtMs), zap.Int("levels", len(st.Levels)), zap.Int("positions", len(st.Positions)))
}

// Rig is a controller wired to virtual hardware and a virtual clock.
type Rig struct {
	HW         *Hardware
	Clock      *Clock
	Sink       *LogSink
	Controller *input.Controller

	// Paced replays in real time.
	Paced     bool
	// AfterTick, when set, runs after every controller tick.
	AfterTick func(now time.Time)
}

// Epoch is the virtual clock's start.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewRig builds a controller for pad. A bad layout still yields a rig
// holding every binding that was valid, next to the joined errors.
// next receives the sink calls after they are logged and may be nil.
func NewRig(log *zap.Logger, pad types.PadConfig, cb input.Callbacks, next input.Sink, opts ...input.Option) (*Rig, error) {
	set, err := input.SettingsFrom(pad)
	if err != nil {
		return nil, err
	}
	r := &Rig{HW: NewHardware(), Clock: NewClock(Epoch)}
	if log == nil {
		log = zap.NewNop()
	}
	r.Sink = NewLogSink(log.Named("sink"), r.Clock.Now, next)
	opts = append(opts, input.WithClock(r.Clock.Now))
	r.Controller = input.New(set, r.HW, r.Sink, opts...)
	if set.ActiveLow {
		// Idle pull-up wiring reads high.
		for _, g := range set.Board.GPIOs() {
			r.HW.SetLevel(g, true)
		}
	}
	return r, input.Apply(r.Controller, pad, cb)
}

// Play replays s through the controller and then releases everything.
func (r *Rig) Play(ctx context.Context, log *zap.Logger, s *Script) error {
	step := r.Controller.Tick
	if r.AfterTick != nil {
		step = func(now time.Time) {
			r.Controller.Tick(now)
			r.AfterTick(now)
		}
	}
	p := NewPlayer(log, r.HW, r.Clock, r.Controller.Settings().Tick, step)
	p.Pace(r.Paced)
	for _, e := range r.Controller.Encoders() {
		p.MapEncoder(e.Label, e.A, e.B)
	}
	return errors.Join(p.Play(ctx, s), r.Controller.Close())
}
