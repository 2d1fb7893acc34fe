package platform

import "macropad-go/services/input/keys"

// The TinyGo HID keyboard takes 16-bit codes whose high byte tags the
// usage page: 0xF0 keyboard usage, 0xE0 modifier bit, 0xE4 consumer.

func usbKeycode(k keys.Code) uint16 {
	if k.IsModifier() {
		return 0xE000 | uint16(k.ModifierBit())
	}
	return 0xF000 | uint16(k)&0xFF
}

func usbConsumer(c keys.Control) uint16 { return 0xE400 | uint16(c)&0x3FF }
