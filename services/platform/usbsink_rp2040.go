//go:build rp2040

package platform

import (
	"machine/usb/hid/keyboard"
	"machine/usb/hid/mouse"

	"macropad-go/services/input/keys"
	"macropad-go/x/mathx"
)

// Port() of both HID packages returns an unexported type.
type hidKeyboard interface {
	Down(c keyboard.Keycode) error
	Up(c keyboard.Keycode) error
	Press(c keyboard.Keycode) error
}

type hidMouse interface {
	Wheel(v int)
}

// usbSink drives TinyGo's composite HID keyboard and mouse.
type usbSink struct {
	kb hidKeyboard
	ms hidMouse
}

func newUSBSink() *usbSink {
	return &usbSink{kb: keyboard.Port(), ms: mouse.Port()}
}

func (s *usbSink) KeyDown(k keys.Code) error { return s.kb.Down(keyboard.Keycode(usbKeycode(k))) }
func (s *usbSink) KeyUp(k keys.Code) error   { return s.kb.Up(keyboard.Keycode(usbKeycode(k))) }

func (s *usbSink) Scroll(delta int) error {
	s.ms.Wheel(mathx.Clamp(delta, -127, 127))
	return nil
}

func (s *usbSink) SendControlCode(c keys.Control) error {
	return s.kb.Press(keyboard.Keycode(usbConsumer(c)))
}
