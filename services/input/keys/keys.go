// Package keys holds USB HID keyboard usages and consumer control codes,
// with the upper-case names static layouts use to refer to them.
package keys

import "strings"

// Code is a keyboard usage ID (HID usage page 0x07).
type Code uint16

// Control is a consumer control usage ID (HID usage page 0x0C).
type Control uint16

const None Code = 0x00

// Letters and digits.
const (
	A Code = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Zero
)

const (
	Enter        Code = 0x28
	Escape       Code = 0x29
	Backspace    Code = 0x2A
	Tab          Code = 0x2B
	Spacebar     Code = 0x2C
	Minus        Code = 0x2D
	Equals       Code = 0x2E
	LeftBracket  Code = 0x2F
	RightBracket Code = 0x30
	Backslash    Code = 0x31
	Semicolon    Code = 0x33
	Quote        Code = 0x34
	Grave        Code = 0x35
	Comma        Code = 0x36
	Period       Code = 0x37
	Slash        Code = 0x38
	CapsLock     Code = 0x39
	F1           Code = 0x3A
	F2           Code = 0x3B
	F3           Code = 0x3C
	F4           Code = 0x3D
	F5           Code = 0x3E
	F6           Code = 0x3F
	F7           Code = 0x40
	F8           Code = 0x41
	F9           Code = 0x42
	F10          Code = 0x43
	F11          Code = 0x44
	F12          Code = 0x45
	PrintScreen  Code = 0x46
	ScrollLock   Code = 0x47
	Pause        Code = 0x48
	Insert       Code = 0x49
	Home         Code = 0x4A
	PageUp       Code = 0x4B
	Delete       Code = 0x4C
	End          Code = 0x4D
	PageDown     Code = 0x4E
	RightArrow   Code = 0x4F
	LeftArrow    Code = 0x50
	DownArrow    Code = 0x51
	UpArrow      Code = 0x52
)

// Keypad.
const (
	KeypadSlash    Code = 0x54
	KeypadAsterisk Code = 0x55
	KeypadMinus    Code = 0x56
	KeypadPlus     Code = 0x57
	KeypadEnter    Code = 0x58
	KeypadOne      Code = 0x59
	KeypadTwo      Code = 0x5A
	KeypadThree    Code = 0x5B
	KeypadFour     Code = 0x5C
	KeypadFive     Code = 0x5D
	KeypadSix      Code = 0x5E
	KeypadSeven    Code = 0x5F
	KeypadEight    Code = 0x60
	KeypadNine     Code = 0x61
	KeypadZero     Code = 0x62
	KeypadPeriod   Code = 0x63
)

// Modifiers occupy 0xE0..0xE7; on the wire they become bits of the
// report's modifier byte rather than entries in the key array.
const (
	LeftControl  Code = 0xE0
	LeftShift    Code = 0xE1
	LeftAlt      Code = 0xE2
	LeftGUI      Code = 0xE3
	RightControl Code = 0xE4
	RightShift   Code = 0xE5
	RightAlt     Code = 0xE6
	RightGUI     Code = 0xE7
)

// Consumer controls.
const (
	ScanNextTrack     Control = 0xB5
	ScanPreviousTrack Control = 0xB6
	Stop              Control = 0xB7
	PlayPause         Control = 0xCD
	Mute              Control = 0xE2
	VolumeIncrement   Control = 0xE9
	VolumeDecrement   Control = 0xEA
	BrightnessUp      Control = 0x6F
	BrightnessDown    Control = 0x70
)

// IsModifier reports whether c is one of the eight modifier usages.
func (c Code) IsModifier() bool { return c >= LeftControl && c <= RightGUI }

// ModifierBit returns the report modifier-byte bit for c, or 0.
func (c Code) ModifierBit() uint8 {
	if !c.IsModifier() {
		return 0
	}
	return 1 << uint8(c-LeftControl)
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "KEY_0x" + hex(uint16(c))
}

func (c Control) String() string {
	if n, ok := controlNames[c]; ok {
		return n
	}
	return "CONTROL_0x" + hex(uint16(c))
}

// Lookup resolves a key name such as "LEFT_ARROW", "e" or "command".
// Aliases follow the macOS/Windows naming seen on desktop keyboards.
func Lookup(name string) (Code, bool) {
	c, ok := byName[normalize(name)]
	return c, ok
}

// LookupControl resolves a consumer control name such as "VOLUME_INCREMENT".
func LookupControl(name string) (Control, bool) {
	c, ok := controlByName[normalize(name)]
	return c, ok
}

func normalize(name string) string {
	name = strings.TrimSpace(strings.ToUpper(name))
	return strings.ReplaceAll(strings.ReplaceAll(name, "-", "_"), " ", "_")
}

func hex(v uint16) string {
	const digits = "0123456789ABCDEF"
	if v == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf[i:])
}

var codeNames = map[Code]string{}
var byName = map[string]Code{}
var controlNames = map[Control]string{}
var controlByName = map[string]Control{}

func init() {
	for _, e := range codeTable {
		if _, dup := codeNames[e.code]; !dup {
			codeNames[e.code] = e.name
		}
		byName[e.name] = e.code
	}
	for _, e := range controlTable {
		controlNames[e.code] = e.name
		controlByName[e.name] = e.code
	}
}
