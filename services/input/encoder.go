package input

import (
	"time"

	"macropad-go/errcode"
	"macropad-go/services/input/keys"
	"macropad-go/types"
)

// Mode is one slot of an encoder's mode cycle. A nil direction does
// nothing when turned that way.
type Mode struct {
	Name    string
	CW      Action
	CCW     Action
	Reverse bool
}

// Reversed returns m with the rotation sense flipped.
func (m Mode) Reversed() Mode { m.Reverse = !m.Reverse; return m }

func (m Mode) empty() bool { return m.CW == nil && m.CCW == nil }

// HorizontalScrollMode scrolls sideways by holding mod around a wheel
// tick; mod defaults to SHIFT. Clockwise scrolls right.
func HorizontalScrollMode(mod keys.Code) Mode {
	if mod == keys.None {
		mod = keys.LeftShift
	}
	return Mode{
		Name: "horizontal",
		CW:   Scroll{Axis: Horizontal, Modifier: mod, Delta: -1},
		CCW:  Scroll{Axis: Horizontal, Modifier: mod, Delta: 1},
	}
}

// VerticalScrollMode scrolls up on clockwise turns.
func VerticalScrollMode() Mode {
	return Mode{
		Name: "vertical",
		CW:   Scroll{Axis: Vertical, Delta: 1},
		CCW:  Scroll{Axis: Vertical, Delta: -1},
	}
}

// ZoomMode zooms in on clockwise turns; mod defaults to CONTROL.
func ZoomMode(mod keys.Code) Mode {
	if mod == keys.None {
		mod = keys.LeftControl
	}
	return Mode{Name: "zoom", CW: Zoom{Modifier: mod, In: true}, CCW: Zoom{Modifier: mod}}
}

func VolumeMode() Mode {
	return Mode{Name: "volume", CW: Volume{Direction: Up}, CCW: Volume{Direction: Down}}
}

// KeyMode taps a key (or runs a callback) per step. Either side may be nil.
func KeyMode(cw, ccw Action) Mode {
	return Mode{Name: "keys", CW: cw, CCW: ccw}
}

// EncoderConfig binds a quadrature pair, an optional mode-toggle switch
// and the mode cycle, starting at Modes[0].
type EncoderConfig struct {
	A, B   PinRef
	Toggle PinRef
	Modes  []Mode
}

// EncoderInfo is a read-only view of a registered encoder.
type EncoderInfo struct {
	Label    string
	A, B     int
	Toggle   int // -1 without a toggle switch
	Mode     string
	Position int
	Faulted  bool
}

type encoder struct {
	slot
	a, b   int
	toggle int
	modes  []Mode

	mode          int
	primed        bool
	last          int
	togglePressed bool
}

func validateEncoder(r Resolver, cfg EncoderConfig) (a, b, toggle int, err error) {
	if a, err = r.Claim(cfg.A); err != nil {
		return
	}
	if b, err = r.Claim(cfg.B); err != nil {
		return
	}
	if a == b {
		err = errcode.New(errcode.InvalidParams, "", "encoder A and B are the same gpio")
		return
	}
	toggle = -1
	if !cfg.Toggle.IsZero() {
		if toggle, err = r.Claim(cfg.Toggle); err != nil {
			return
		}
		if toggle == a || toggle == b {
			err = errcode.New(errcode.InvalidParams, "", "toggle pin is one of the encoder pins")
			return
		}
	}
	for _, m := range cfg.Modes {
		if !m.empty() {
			return
		}
	}
	err = errcode.New(errcode.NoEncoderAction, "", "no mode has a clockwise or counter-clockwise action")
	return
}

// serviceEncoder runs one tick of the encoder state machine. The first
// tick only records the baseline.
func (c *Controller) serviceEncoder(e *encoder, now time.Time) error {
	pos, err := c.hw.Position(e.a, e.b)
	if err != nil {
		return &errcode.E{C: errcode.ReadFailed, Op: "encoder " + e.label, Err: err}
	}
	var toggled bool
	if e.toggle >= 0 {
		level, err := c.hw.Level(e.toggle)
		if err != nil {
			return &errcode.E{C: errcode.ReadFailed, Op: "encoder " + e.label + " toggle", Err: err}
		}
		active := level != c.set.ActiveLow
		toggled = active && !e.togglePressed && e.primed
		e.togglePressed = active
	}
	if !e.primed {
		e.primed = true
		e.last = pos
		return nil
	}
	if toggled {
		e.mode = (e.mode + 1) % len(e.modes)
		c.emitMode(e, now)
	}

	delta := pos - e.last
	e.last = pos
	if delta == 0 {
		return nil
	}
	m := e.modes[e.mode]
	if m.Reverse {
		delta = -delta
	}
	dir, act := "cw", m.CW
	if delta < 0 {
		dir, act = "ccw", m.CCW
	}
	c.emitTurn(e, dir, pos, delta, act, now)
	if act == nil {
		return nil
	}
	return c.dispatch(&e.slot, act, now)
}

func (c *Controller) emitTurn(e *encoder, dir string, pos, delta int, act Action, now time.Time) {
	if c.conn == nil {
		return
	}
	ev := types.EncoderEvent{Label: e.label, Mode: e.modes[e.mode].Name, Position: pos, Delta: delta, TSms: now.UnixMilli()}
	if act != nil {
		ev.Action = act.String()
	}
	c.publish(topicEncoder.Append(e.label, dir), ev, false)
}

func (c *Controller) emitMode(e *encoder, now time.Time) {
	if c.conn == nil {
		return
	}
	c.publish(topicEncoder.Append(e.label, "mode"), types.ModeEvent{
		Label: e.label, Index: e.mode, Name: e.modes[e.mode].Name, TSms: now.UnixMilli(),
	}, false)
}
