package setups

import "macropad-go/types"

// Proto is the breadboard prototype, wired with a mix of connector pin
// numbers and GPIOs and pull-down switches.
var Proto = types.PadConfig{
	Board:        "pico",
	ReservedGPIO: types.IntPtr(22),
	Buttons: []types.ButtonSpec{
		{
			Label:              "fullscreen",
			GPIO:               types.IntPtr(14),
			Press:              combo(supercombo, "UP_ARROW"),
			Long:               combo(supercombo, "DOWN_ARROW"),
			LongPressThreshold: 0.25,
		},
		{Label: "left_half", Pin: types.IntPtr(20), Press: combo(supercombo, "LEFT_ARROW")},
		{Label: "right_half", GPIO: types.IntPtr(6), Press: combo(supercombo, "RIGHT_ARROW")},
		{Label: "button_4", Pin: types.IntPtr(7), Press: combo(supercombo, "KEYPAD_SIX")},
		{Label: "button_5", GPIO: types.IntPtr(16), Press: combo(supercombo, "KEYPAD_FOUR")},
		{Label: "desktop_left", Pin: types.IntPtr(6), Press: combo([]string{"CONTROL"}, "LEFT_ARROW")},
		{Label: "desktop_right", GPIO: types.IntPtr(2), Press: combo([]string{"CONTROL"}, "RIGHT_ARROW")},
		{
			Label:              "button_8",
			GPIO:               types.IntPtr(28),
			Press:              callback("hello"),
			Long:               callback("freemem"),
			LongPressThreshold: 1.2,
		},
		{Label: "button_9", Pin: types.IntPtr(15), Key: "E"},
	},
	Encoders: []types.EncoderSpec{
		{Label: "scroll_encoder", PinA: types.IntPtr(11), PinB: types.IntPtr(12), Modes: []types.ModeSpec{{Kind: "horizontal", Modifier: "SHIFT"}}},
	},
}
