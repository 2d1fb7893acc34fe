// Package input is the macro pad's input-event engine. It samples button
// and encoder pins once per tick, runs each binding's state machine and
// dispatches the resulting actions to an output sink.
//
// The engine is single-threaded: every method of a Controller must be
// called from the goroutine that drives it.
package input

import (
	"time"

	"macropad-go/services/input/boards"
)

// NoReservedGPIO disables the reserved-pin check.
const NoReservedGPIO = -1

// Settings is the engine's immutable configuration. It is copied into a
// Controller at construction.
type Settings struct {
	Board        *boards.Board
	ReservedGPIO int  // mode-select switch; NoReservedGPIO for none
	ActiveLow    bool // pull-up wiring: a pressed switch reads low

	Tick         time.Duration // poll period, also the debounce granularity
	ComboHold    time.Duration // how long a combo stays down
	KeyStepHold  time.Duration // key-per-step press length
	ModifierHold time.Duration // modifier held around a scroll tick

	MaxFaults int  // consecutive failures before a binding is disabled
	DryRun    bool // evaluate and report actions but leave the sink untouched
}

// DefaultSettings targets a Raspberry Pi Pico with the mode switch on GP22.
func DefaultSettings() Settings {
	return Settings{
		Board:        boards.Pico,
		ReservedGPIO: 22,
		Tick:         10 * time.Millisecond,
		ComboHold:    100 * time.Millisecond,
		KeyStepHold:  30 * time.Millisecond,
		ModifierHold: time.Millisecond,
		MaxFaults:    8,
	}
}

// normalized fills zero fields from DefaultSettings. ReservedGPIO is
// taken as given.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.Board == nil {
		s.Board = d.Board
	}
	if s.Tick <= 0 {
		s.Tick = d.Tick
	}
	if s.ComboHold <= 0 {
		s.ComboHold = d.ComboHold
	}
	if s.KeyStepHold <= 0 {
		s.KeyStepHold = d.KeyStepHold
	}
	if s.ModifierHold <= 0 {
		s.ModifierHold = d.ModifierHold
	}
	if s.MaxFaults <= 0 {
		s.MaxFaults = d.MaxFaults
	}
	return s
}
