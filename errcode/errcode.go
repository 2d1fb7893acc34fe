package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	// Configuration-time binding errors.
	AmbiguousPin     Code = "ambiguous_pin"     // neither or both of pin/gpio given
	UnknownPin       Code = "unknown_pin"       // physical pin not wired to a GPIO
	ReservedPin      Code = "reserved_pin"      // the mode-select GPIO
	ActionConflict   Code = "action_conflict"   // direct key and macro both or neither
	MacroOnlyField   Code = "macro_only_field"  // long/release/threshold next to a direct key
	MissingThreshold Code = "missing_threshold" // long-press action without a threshold
	NoEncoderAction  Code = "no_encoder_action" // no mode carries a cw/ccw action
	UnknownKey       Code = "unknown_key"
	UnknownMode      Code = "unknown_mode"
	UnknownCallback  Code = "unknown_callback"
	UnknownBoard     Code = "unknown_board"

	// Runtime, per binding.
	ReadFailed     Code = "read_failed"
	DispatchFailed Code = "dispatch_failed"
	Faulted        Code = "faulted"
	Rollover       Code = "rollover" // boot keyboard report already holds six keys

	Error Code = "error" // generic fallback
)

// E keeps context and a cause next to a Code. A *E carrying a
// configuration code is what the input engine reports as ConfigError.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

// New builds an *E for op.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the cause, or the code itself when there is none,
// so errors.Is(err, SomeCode) holds for a bare *E.
func (e *E) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.C
}

// Is matches a target Code against e's own code even when a cause is set.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

func (e *E) Code() Code { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return Of(u.Unwrap())
	}
	return Error
}

// IsConfig reports whether c is one of the configuration-time codes.
func IsConfig(c Code) bool {
	switch c {
	case InvalidParams, AmbiguousPin, UnknownPin, ReservedPin, ActionConflict,
		MacroOnlyField, MissingThreshold, NoEncoderAction, UnknownKey,
		UnknownMode, UnknownCallback, UnknownBoard:
		return true
	}
	return false
}
