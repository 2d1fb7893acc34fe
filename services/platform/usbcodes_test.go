package platform

import (
	"testing"

	"macropad-go/services/input/keys"
)

func TestUSBKeycode(t *testing.T) {
	cases := []struct {
		k    keys.Code
		want uint16
	}{
		{keys.A, 0xF004},
		{keys.RightArrow, 0xF04F},
		{keys.LeftControl, 0xE001},
		{keys.LeftShift, 0xE002},
		{keys.LeftGUI, 0xE008},
		{keys.RightGUI, 0xE080},
	}
	for _, c := range cases {
		if got := usbKeycode(c.k); got != c.want {
			t.Fatalf("usbKeycode(%s) = %#x want %#x", c.k, got, c.want)
		}
	}
	if got := usbConsumer(keys.VolumeIncrement); got != 0xE4E9 {
		t.Fatalf("usbConsumer = %#x", got)
	}
}
