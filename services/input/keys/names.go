package keys

// First entry for a code is its canonical name; later entries are aliases.
var codeTable = []struct {
	name string
	code Code
}{
	{"A", A}, {"B", B}, {"C", C}, {"D", D}, {"E", E}, {"F", F}, {"G", G},
	{"H", H}, {"I", I}, {"J", J}, {"K", K}, {"L", L}, {"M", M}, {"N", N},
	{"O", O}, {"P", P}, {"Q", Q}, {"R", R}, {"S", S}, {"T", T}, {"U", U},
	{"V", V}, {"W", W}, {"X", X}, {"Y", Y}, {"Z", Z},

	{"ONE", One}, {"TWO", Two}, {"THREE", Three}, {"FOUR", Four}, {"FIVE", Five},
	{"SIX", Six}, {"SEVEN", Seven}, {"EIGHT", Eight}, {"NINE", Nine}, {"ZERO", Zero},
	{"1", One}, {"2", Two}, {"3", Three}, {"4", Four}, {"5", Five},
	{"6", Six}, {"7", Seven}, {"8", Eight}, {"9", Nine}, {"0", Zero},

	{"ENTER", Enter}, {"RETURN", Enter},
	{"ESCAPE", Escape}, {"ESC", Escape},
	{"BACKSPACE", Backspace},
	{"TAB", Tab},
	{"SPACEBAR", Spacebar}, {"SPACE", Spacebar},
	{"MINUS", Minus},
	{"EQUALS", Equals},
	{"LEFT_BRACKET", LeftBracket},
	{"RIGHT_BRACKET", RightBracket},
	{"BACKSLASH", Backslash},
	{"SEMICOLON", Semicolon},
	{"QUOTE", Quote},
	{"GRAVE_ACCENT", Grave}, {"GRAVE", Grave},
	{"COMMA", Comma},
	{"PERIOD", Period},
	{"FORWARD_SLASH", Slash}, {"SLASH", Slash},
	{"CAPS_LOCK", CapsLock},
	{"F1", F1}, {"F2", F2}, {"F3", F3}, {"F4", F4}, {"F5", F5}, {"F6", F6},
	{"F7", F7}, {"F8", F8}, {"F9", F9}, {"F10", F10}, {"F11", F11}, {"F12", F12},
	{"PRINT_SCREEN", PrintScreen},
	{"SCROLL_LOCK", ScrollLock},
	{"PAUSE", Pause},
	{"INSERT", Insert},
	{"HOME", Home},
	{"PAGE_UP", PageUp},
	{"DELETE", Delete},
	{"END", End},
	{"PAGE_DOWN", PageDown},
	{"RIGHT_ARROW", RightArrow}, {"RIGHT", RightArrow},
	{"LEFT_ARROW", LeftArrow}, {"LEFT", LeftArrow},
	{"DOWN_ARROW", DownArrow}, {"DOWN", DownArrow},
	{"UP_ARROW", UpArrow}, {"UP", UpArrow},

	{"KEYPAD_FORWARD_SLASH", KeypadSlash},
	{"KEYPAD_ASTERISK", KeypadAsterisk},
	{"KEYPAD_MINUS", KeypadMinus},
	{"KEYPAD_PLUS", KeypadPlus},
	{"KEYPAD_ENTER", KeypadEnter},
	{"KEYPAD_ONE", KeypadOne}, {"KEYPAD_TWO", KeypadTwo}, {"KEYPAD_THREE", KeypadThree},
	{"KEYPAD_FOUR", KeypadFour}, {"KEYPAD_FIVE", KeypadFive}, {"KEYPAD_SIX", KeypadSix},
	{"KEYPAD_SEVEN", KeypadSeven}, {"KEYPAD_EIGHT", KeypadEight}, {"KEYPAD_NINE", KeypadNine},
	{"KEYPAD_ZERO", KeypadZero},
	{"KEYPAD_PERIOD", KeypadPeriod},

	{"LEFT_CONTROL", LeftControl}, {"CONTROL", LeftControl}, {"CTRL", LeftControl},
	{"LEFT_SHIFT", LeftShift}, {"SHIFT", LeftShift},
	{"LEFT_ALT", LeftAlt}, {"ALT", LeftAlt}, {"OPTION", LeftAlt},
	{"LEFT_GUI", LeftGUI}, {"GUI", LeftGUI}, {"COMMAND", LeftGUI}, {"WINDOWS", LeftGUI},
	{"RIGHT_CONTROL", RightControl},
	{"RIGHT_SHIFT", RightShift},
	{"RIGHT_ALT", RightAlt},
	{"RIGHT_GUI", RightGUI},
}

var controlTable = []struct {
	name string
	code Control
}{
	{"SCAN_NEXT_TRACK", ScanNextTrack},
	{"SCAN_PREVIOUS_TRACK", ScanPreviousTrack},
	{"STOP", Stop},
	{"PLAY_PAUSE", PlayPause},
	{"MUTE", Mute},
	{"VOLUME_INCREMENT", VolumeIncrement},
	{"VOLUME_DECREMENT", VolumeDecrement},
	{"BRIGHTNESS_INCREMENT", BrightnessUp},
	{"BRIGHTNESS_DECREMENT", BrightnessDown},
}
