package input

import (
	"strconv"

	"macropad-go/errcode"
	"macropad-go/services/input/boards"
)

// PinRef names a pin either by physical connector number or by GPIO.
// Exactly one must be set; the zero value means "no pin".
type PinRef struct {
	Physical *int
	GPIO     *int
}

// OnPin refers to physical connector pin n.
func OnPin(n int) PinRef { return PinRef{Physical: &n} }

// OnGPIO refers to logical GPIO n.
func OnGPIO(n int) PinRef { return PinRef{GPIO: &n} }

// IsZero reports whether neither field is set.
func (p PinRef) IsZero() bool { return p.Physical == nil && p.GPIO == nil }

func (p PinRef) String() string {
	switch {
	case p.Physical != nil && p.GPIO != nil:
		return "pin " + strconv.Itoa(*p.Physical) + "/GP" + strconv.Itoa(*p.GPIO)
	case p.Physical != nil:
		return "pin " + strconv.Itoa(*p.Physical)
	case p.GPIO != nil:
		return "GP" + strconv.Itoa(*p.GPIO)
	}
	return "no pin"
}

// Resolver maps PinRefs to GPIOs over one board table and guards the
// reserved mode-select GPIO. It holds no mutable state.
type Resolver struct {
	board    *boards.Board
	reserved int
}

func NewResolver(s Settings) Resolver {
	s = s.normalized()
	return Resolver{board: s.Board, reserved: s.ReservedGPIO}
}

// Resolve returns the GPIO p refers to.
func (r Resolver) Resolve(p PinRef) (int, error) {
	const op = "input.Resolve"
	switch {
	case p.Physical == nil && p.GPIO == nil:
		return 0, errcode.New(errcode.AmbiguousPin, op, "neither pin nor gpio given")
	case p.Physical != nil && p.GPIO != nil:
		return 0, errcode.New(errcode.AmbiguousPin, op, "both pin and gpio given")
	case p.Physical != nil:
		g, ok := r.board.GPIO(*p.Physical)
		if !ok {
			return 0, errcode.New(errcode.UnknownPin, op, r.board.Name+" pin "+strconv.Itoa(*p.Physical)+" is not a gpio")
		}
		return g, nil
	}
	g := *p.GPIO
	if g < 0 || g > r.board.MaxGPIO {
		return 0, errcode.New(errcode.UnknownPin, op, "GP"+strconv.Itoa(g)+" out of range for "+r.board.Name)
	}
	return g, nil
}

// AssertNotReserved fails when gpio is the mode-select pin.
func (r Resolver) AssertNotReserved(gpio int) error {
	if r.reserved != NoReservedGPIO && gpio == r.reserved {
		return errcode.New(errcode.ReservedPin, "input.AssertNotReserved", "GP"+strconv.Itoa(gpio)+" is the mode-select pin")
	}
	return nil
}

// Claim resolves p and checks it is usable by a binding.
func (r Resolver) Claim(p PinRef) (int, error) {
	g, err := r.Resolve(p)
	if err != nil {
		return 0, err
	}
	if err := r.AssertNotReserved(g); err != nil {
		return 0, err
	}
	return g, nil
}
