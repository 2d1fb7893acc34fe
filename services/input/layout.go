package input

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"macropad-go/errcode"
	"macropad-go/services/input/boards"
	"macropad-go/services/input/keys"
	"macropad-go/types"
)

// Callbacks names the macros a layout can refer to with
// {type: callback, callback: <name>}.
type Callbacks map[string]func()

// SettingsFrom derives engine settings from a layout's header fields.
func SettingsFrom(p types.PadConfig) (Settings, error) {
	s := DefaultSettings()
	if p.Board != "" {
		b, err := boards.Lookup(p.Board)
		if err != nil {
			return s, err
		}
		s.Board = b
	}
	if p.ReservedGPIO != nil {
		s.ReservedGPIO = *p.ReservedGPIO
		if s.ReservedGPIO < 0 {
			s.ReservedGPIO = NoReservedGPIO
		}
	}
	s.ActiveLow = p.ActiveLow
	if p.TickMs > 0 {
		s.Tick = time.Duration(p.TickMs) * time.Millisecond
	}
	s.DryRun = p.DryRun
	return s, nil
}

// Apply registers every button and encoder of p, in order. A rejected
// binding does not stop the rest; all errors are joined.
func Apply(c *Controller, p types.PadConfig, cb Callbacks) error {
	var errs []error
	for _, bs := range p.Buttons {
		cfg, err := ButtonFromSpec(bs, cb)
		if err != nil {
			errs = append(errs, configError("input.AddButton", bs.Label, err))
			continue
		}
		errs = append(errs, c.AddButton(bs.Label, cfg))
	}
	for _, es := range p.Encoders {
		cfg, err := EncoderFromSpec(es, cb)
		if err != nil {
			label := es.Label
			if label == "" {
				label = "encoder_" + strconv.Itoa(c.encSeq+1)
			}
			errs = append(errs, configError("input.AddEncoder", label, err))
			continue
		}
		errs = append(errs, c.AddEncoder(es.Label, cfg))
	}
	return errors.Join(errs...)
}

func pinRef(phys, gpio *int) PinRef { return PinRef{Physical: phys, GPIO: gpio} }

func ButtonFromSpec(bs types.ButtonSpec, cb Callbacks) (ButtonConfig, error) {
	cfg := ButtonConfig{
		Pin:                pinRef(bs.Pin, bs.GPIO),
		LongPressThreshold: time.Duration(bs.LongPressThreshold * float64(time.Second)),
	}
	var err error
	if bs.Key != "" {
		if cfg.Key, err = lookupKey(bs.Key); err != nil {
			return cfg, err
		}
	}
	if cfg.Press, err = ActionFromSpec(bs.Press, cb); err != nil {
		return cfg, err
	}
	if cfg.LongPress, err = ActionFromSpec(bs.Long, cb); err != nil {
		return cfg, err
	}
	if cfg.Release, err = ActionFromSpec(bs.Release, cb); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func EncoderFromSpec(es types.EncoderSpec, cb Callbacks) (EncoderConfig, error) {
	cfg := EncoderConfig{
		A: pinRef(es.PinA, es.GPIOA),
		B: pinRef(es.PinB, es.GPIOB),
	}
	if es.TogglePin != nil || es.ToggleGPIO != nil {
		cfg.Toggle = pinRef(es.TogglePin, es.ToggleGPIO)
	}
	for _, ms := range es.Modes {
		m, err := ModeFromSpec(ms, cb)
		if err != nil {
			return cfg, err
		}
		cfg.Modes = append(cfg.Modes, m)
	}
	return cfg, nil
}

func ModeFromSpec(ms types.ModeSpec, cb Callbacks) (Mode, error) {
	var mod keys.Code
	if ms.Modifier != "" {
		var err error
		if mod, err = lookupKey(ms.Modifier); err != nil {
			return Mode{}, err
		}
	}
	var m Mode
	switch strings.ToLower(ms.Kind) {
	case "horizontal":
		m = HorizontalScrollMode(mod)
	case "vertical":
		m = VerticalScrollMode()
	case "zoom":
		m = ZoomMode(mod)
	case "volume":
		m = VolumeMode()
	case "keys":
		cw, err := ActionFromSpec(ms.CW, cb)
		if err != nil {
			return Mode{}, err
		}
		ccw, err := ActionFromSpec(ms.CCW, cb)
		if err != nil {
			return Mode{}, err
		}
		m = KeyMode(cw, ccw)
	default:
		return Mode{}, errcode.New(errcode.UnknownMode, "", "mode kind "+quote(ms.Kind))
	}
	if ms.Name != "" {
		m.Name = ms.Name
	}
	m.Reverse = ms.Reverse
	return m, nil
}

// ActionFromSpec builds the action a describes; nil gives nil.
func ActionFromSpec(a *types.ActionSpec, cb Callbacks) (Action, error) {
	if a == nil {
		return nil, nil
	}
	var mod keys.Code
	if a.Modifier != "" {
		var err error
		if mod, err = lookupKey(a.Modifier); err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(a.Type) {
	case "key":
		k, err := lookupKey(a.Key)
		if err != nil {
			return nil, err
		}
		return Key{Code: k}, nil

	case "combo":
		c := Combo{}
		for _, name := range a.Modifiers {
			k, err := lookupKey(name)
			if err != nil {
				return nil, err
			}
			c.Modifiers = append(c.Modifiers, k)
		}
		if a.Key != "" {
			k, err := lookupKey(a.Key)
			if err != nil {
				return nil, err
			}
			c.Key = k
		}
		if len(c.Modifiers) == 0 && c.Key == keys.None {
			return nil, errcode.New(errcode.InvalidParams, "", "empty combo")
		}
		return c, nil

	case "scroll":
		s := Scroll{Modifier: mod, Delta: a.Delta}
		switch strings.ToLower(a.Axis) {
		case "", "vertical":
		case "horizontal":
			s.Axis = Horizontal
		default:
			return nil, errcode.New(errcode.InvalidParams, "", "scroll axis "+quote(a.Axis))
		}
		if s.Delta == 0 {
			s.Delta = 1
		}
		return s, nil

	case "zoom":
		if mod == keys.None {
			mod = keys.LeftControl
		}
		switch strings.ToLower(a.Direction) {
		case "", "in":
			return Zoom{Modifier: mod, In: true}, nil
		case "out":
			return Zoom{Modifier: mod}, nil
		}
		return nil, errcode.New(errcode.InvalidParams, "", "zoom direction "+quote(a.Direction))

	case "volume":
		switch strings.ToLower(a.Direction) {
		case "", "up":
			return Volume{Direction: Up}, nil
		case "down":
			return Volume{Direction: Down}, nil
		}
		return nil, errcode.New(errcode.InvalidParams, "", "volume direction "+quote(a.Direction))

	case "callback":
		fn, ok := cb[a.Callback]
		if !ok {
			return nil, errcode.New(errcode.UnknownCallback, "", quote(a.Callback))
		}
		return Callback{Name: a.Callback, Fn: fn}, nil
	}
	return nil, errcode.New(errcode.InvalidParams, "", "action type "+quote(a.Type))
}

func lookupKey(name string) (keys.Code, error) {
	k, ok := keys.Lookup(name)
	if !ok {
		return keys.None, errcode.New(errcode.UnknownKey, "", quote(name))
	}
	return k, nil
}

func quote(s string) string { return "\"" + s + "\"" }
