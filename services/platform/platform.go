// Package platform binds the input engine to a real board: pin reads,
// quadrature counters, the USB HID output and the console.
package platform

import (
	"io"

	"macropad-go/services/diag"
	"macropad-go/services/input"
)

// Pad is an opened board.
type Pad interface {
	input.Hardware
	Sink() input.Sink
	// StopSignal fires once a byte arrives on the console.
	StopSignal() input.StopSignal
	Console() io.Writer
	// EditMode reads the mode-select switch (pull-down, high = edit).
	EditMode(gpio int) bool
	// Monitor reads pins for the edit-mode monitor. Pins are pulled
	// down regardless of the layout's polarity.
	Monitor() diag.Reader
}

// Open prepares the board for set. Pins are configured on first use.
func Open(set input.Settings) (Pad, error) { return open(set) }

// Debug UART used as a second stop source. GP20/GP21 are free in the
// built-in layouts.
const (
	debugUARTBaud = 115200
	debugUARTTX   = 20
	debugUARTRX   = 21
)

// DebugUARTPins are the GPIOs held by the debug UART. The edit-mode
// monitor must leave them alone.
func DebugUARTPins() []int { return []int{debugUARTTX, debugUARTRX} }
