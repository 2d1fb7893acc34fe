package input

import (
	"time"

	"macropad-go/errcode"
	"macropad-go/services/input/keys"
	"macropad-go/types"
)

// ButtonConfig binds one pin to either a direct key or a macro. A direct
// key is held for exactly as long as the switch; the macro form runs
// Press on the down edge, LongPress once per hold after
// LongPressThreshold, and Release on the up edge.
type ButtonConfig struct {
	Pin PinRef
	Key keys.Code

	Press              Action
	LongPress          Action
	Release            Action
	LongPressThreshold time.Duration
}

// ButtonInfo is a read-only view of a registered button.
type ButtonInfo struct {
	Label   string
	GPIO    int
	Pressed bool
	Faulted bool
}

type button struct {
	slot
	gpio int
	cfg  ButtonConfig

	pressed   bool
	since     time.Time
	longFired bool
}

func validateButton(r Resolver, cfg ButtonConfig) (int, error) {
	gpio, err := r.Claim(cfg.Pin)
	if err != nil {
		return 0, err
	}
	direct := cfg.Key != keys.None
	switch {
	case direct && cfg.Press != nil:
		return 0, errcode.New(errcode.ActionConflict, "", "both a direct key and a press macro given")
	case !direct && cfg.Press == nil:
		return 0, errcode.New(errcode.ActionConflict, "", "neither a direct key nor a press macro given")
	case direct && (cfg.LongPress != nil || cfg.Release != nil || cfg.LongPressThreshold != 0):
		return 0, errcode.New(errcode.MacroOnlyField, "", "long press, release and threshold need a press macro")
	case cfg.LongPressThreshold < 0:
		return 0, errcode.New(errcode.InvalidParams, "", "negative long press threshold")
	case cfg.LongPress != nil && cfg.LongPressThreshold == 0:
		return 0, errcode.New(errcode.MissingThreshold, "", "long press action without a threshold")
	}
	return gpio, nil
}

// serviceButton runs one tick of the button state machine.
func (c *Controller) serviceButton(b *button, now time.Time) error {
	level, err := c.hw.Level(b.gpio)
	if err != nil {
		return &errcode.E{C: errcode.ReadFailed, Op: "button " + b.label, Err: err}
	}
	active := level != c.set.ActiveLow

	switch {
	case active && !b.pressed:
		b.pressed, b.since, b.longFired = true, now, false
		if b.cfg.Key != keys.None {
			c.emitButton(b, "pressed", Key{Code: b.cfg.Key}.String(), now)
			return c.out().KeyDown(b.cfg.Key)
		}
		c.emitButton(b, "pressed", b.cfg.Press.String(), now)
		return c.dispatch(&b.slot, b.cfg.Press, now)

	case !active && b.pressed:
		b.pressed, b.longFired = false, false
		if b.cfg.Key != keys.None {
			c.emitButton(b, "released", Key{Code: b.cfg.Key}.String(), now)
			return c.out().KeyUp(b.cfg.Key)
		}
		if b.cfg.Release == nil {
			c.emitButton(b, "released", "", now)
			return nil
		}
		c.emitButton(b, "released", b.cfg.Release.String(), now)
		return c.dispatch(&b.slot, b.cfg.Release, now)

	case active && b.cfg.LongPress != nil && !b.longFired && now.Sub(b.since) >= b.cfg.LongPressThreshold:
		b.longFired = true
		c.emitButton(b, "long", b.cfg.LongPress.String(), now)
		return c.dispatch(&b.slot, b.cfg.LongPress, now)
	}
	return nil
}

// releaseButton lets go of a held direct key.
func (c *Controller) releaseButton(b *button) error {
	if !b.pressed || b.cfg.Key == keys.None {
		return nil
	}
	b.pressed = false
	return c.out().KeyUp(b.cfg.Key)
}

func (c *Controller) emitButton(b *button, edge, action string, now time.Time) {
	if c.conn == nil {
		return
	}
	ev := types.ButtonEvent{Label: b.label, GPIO: b.gpio, Action: action, TSms: now.UnixMilli()}
	if edge != "pressed" {
		ev.HeldMs = now.Sub(b.since).Milliseconds()
	}
	c.publish(topicButton.Append(b.label, edge), ev, false)
}
