package setups

import "macropad-go/types"

// Desk is the 4x6 window-management pad. Switches pull up, so pressed
// reads low. The encoder cycles horizontal scroll and zoom.
//
//	a1 a2 a3 a4
//	b1 b2 b3 b4
//	c1 c2 c3 c4
//	d1 d2 d3 d4
//	e1 e2 e3 e4
//	f1 f2 f3 f4
var Desk = types.PadConfig{
	Board:        "pico",
	ReservedGPIO: types.IntPtr(22),
	ActiveLow:    true,
	Buttons: []types.ButtonSpec{
		{Label: "a1_desktop_left", GPIO: types.IntPtr(13), Press: combo([]string{"CONTROL"}, "LEFT_ARROW")},
		{Label: "a2_desktop_right", GPIO: types.IntPtr(6), Press: combo([]string{"CONTROL"}, "RIGHT_ARROW")},
		{
			Label:              "a4_fullscreen",
			GPIO:               types.IntPtr(14),
			Press:              combo(supercombo, "KEYPAD_NINE"),
			Long:               combo(supercombo, "KEYPAD_SEVEN"),
			LongPressThreshold: 0.25,
		},
		{Label: "b1_terminal", GPIO: types.IntPtr(11), Press: combo(supercombo, "T")},
		{
			Label:              "c3_top_half",
			GPIO:               types.IntPtr(10),
			Press:              combo(supercombo, "UP_ARROW"),
			Long:               combo(supercombo, "KEYPAD_NINE"),
			LongPressThreshold: 0.25,
		},
		{Label: "d2_left_half", GPIO: types.IntPtr(4), Press: combo(supercombo, "LEFT_ARROW")},
		{Label: "d3_bottom_half", GPIO: types.IntPtr(12), Press: combo(supercombo, "DOWN_ARROW")},
		{Label: "d4_right_half", GPIO: types.IntPtr(15), Press: combo(supercombo, "RIGHT_ARROW")},
		{Label: "e1_mission_control", GPIO: types.IntPtr(5), Press: combo([]string{"CONTROL"}, "UP_ARROW")},
		{Label: "f1_spotlight", GPIO: types.IntPtr(3), Press: combo([]string{"COMMAND"}, "SPACEBAR")},
	},
	Encoders: []types.EncoderSpec{{
		Label:      "knob",
		GPIOA:      types.IntPtr(0),
		GPIOB:      types.IntPtr(1),
		ToggleGPIO: types.IntPtr(2),
		Modes: []types.ModeSpec{
			{Kind: "horizontal"},
			{
				Kind: "keys",
				Name: "zoom",
				CW:   combo([]string{"COMMAND"}, "EQUALS"),
				CCW:  combo([]string{"COMMAND"}, "MINUS"),
			},
		},
	}},
}
