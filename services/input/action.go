package input

import (
	"fmt"
	"strconv"
	"strings"

	"macropad-go/errcode"
	"macropad-go/services/input/keys"
)

// Action is what a trigger does. Do must not block: anything that has to
// happen later (releasing a key) goes through Exec.After.
type Action interface {
	Do(x *Exec) error
	String() string
}

// Key presses a single key and releases it after Settings.KeyStepHold.
type Key struct {
	Code keys.Code
}

func (a Key) Do(x *Exec) error {
	if err := x.KeyDown(a.Code); err != nil {
		return err
	}
	x.After(x.Settings().KeyStepHold, func() error { return x.KeyUp(a.Code) })
	return nil
}

func (a Key) String() string { return "key " + a.Code.String() }

// Combo holds the modifiers, taps Key and releases everything after
// Settings.ComboHold, key first then modifiers in reverse.
type Combo struct {
	Modifiers []keys.Code
	Key       keys.Code
}

func (a Combo) Do(x *Exec) error {
	down := make([]keys.Code, 0, len(a.Modifiers)+1)
	down = append(down, a.Modifiers...)
	if a.Key != keys.None {
		down = append(down, a.Key)
	}
	var err error
	pressed := down[:0:0]
	for _, k := range down {
		if err = x.KeyDown(k); err != nil {
			break
		}
		pressed = append(pressed, k)
	}
	// Whatever went down comes back up, even after a failed press.
	x.After(x.Settings().ComboHold, func() error {
		var first error
		for i := len(pressed) - 1; i >= 0; i-- {
			if e := x.KeyUp(pressed[i]); e != nil && first == nil {
				first = e
			}
		}
		return first
	})
	return err
}

func (a Combo) String() string {
	parts := make([]string, 0, len(a.Modifiers)+1)
	for _, m := range a.Modifiers {
		parts = append(parts, m.String())
	}
	if a.Key != keys.None {
		parts = append(parts, a.Key.String())
	}
	return "combo " + strings.Join(parts, "+")
}

type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Scroll emits one wheel tick of Delta, wrapped in Modifier when set.
// Hosts read a shifted vertical wheel as horizontal scrolling, so Axis
// only labels the intent.
type Scroll struct {
	Axis     Axis
	Modifier keys.Code
	Delta    int
}

func (a Scroll) Do(x *Exec) error { return wheel(x, a.Modifier, a.Delta) }

func (a Scroll) String() string {
	s := "scroll " + a.Axis.String() + " " + strconv.Itoa(a.Delta)
	if a.Modifier != keys.None {
		s += " with " + a.Modifier.String()
	}
	return s
}

// Zoom is a modified wheel tick: up to zoom in, down to zoom out.
type Zoom struct {
	Modifier keys.Code
	In       bool
}

func (a Zoom) Do(x *Exec) error {
	d := -1
	if a.In {
		d = 1
	}
	return wheel(x, a.Modifier, d)
}

func (a Zoom) String() string {
	s := "zoom out"
	if a.In {
		s = "zoom in"
	}
	if a.Modifier != keys.None {
		s += " with " + a.Modifier.String()
	}
	return s
}

func wheel(x *Exec, mod keys.Code, delta int) error {
	if mod == keys.None {
		return x.Scroll(delta)
	}
	if err := x.KeyDown(mod); err != nil {
		return err
	}
	err := x.Scroll(delta)
	x.After(x.Settings().ModifierHold, func() error { return x.KeyUp(mod) })
	return err
}

type Direction int8

const (
	Down Direction = -1
	Up   Direction = 1
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Volume sends a consumer volume step.
type Volume struct {
	Direction Direction
}

func (a Volume) Do(x *Exec) error {
	if a.Direction == Down {
		return x.Control(keys.VolumeDecrement)
	}
	return x.Control(keys.VolumeIncrement)
}

func (a Volume) String() string { return "volume " + a.Direction.String() }

// Callback runs an arbitrary macro. A panic in Fn is returned as an error.
// Callbacks are skipped in dry-run mode.
type Callback struct {
	Name string
	Fn   func()
}

func (a Callback) Do(x *Exec) (err error) {
	if a.Fn == nil || x.DryRun() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &errcode.E{C: errcode.DispatchFailed, Op: "callback " + a.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	a.Fn()
	return nil
}

func (a Callback) String() string {
	if a.Name == "" {
		return "callback"
	}
	return "callback " + a.Name
}
