package input

import (
	"errors"
	"testing"
	"time"

	"macropad-go/errcode"
	"macropad-go/services/input/keys"
	"macropad-go/types"
)

func samplePad() types.PadConfig {
	return types.PadConfig{
		Board:        "pico",
		ReservedGPIO: types.IntPtr(22),
		ActiveLow:    true,
		TickMs:       5,
		Buttons: []types.ButtonSpec{
			{Label: "right", GPIO: types.IntPtr(15), Key: "RIGHT_ARROW"},
			{Label: "copy", Pin: types.IntPtr(21), Press: &types.ActionSpec{Type: "combo", Modifiers: []string{"COMMAND"}, Key: "c"}},
			{
				Label:              "macro",
				GPIO:               types.IntPtr(2),
				Press:              &types.ActionSpec{Type: "callback", Callback: "hello"},
				Long:               &types.ActionSpec{Type: "volume", Direction: "down"},
				LongPressThreshold: 0.5,
			},
		},
		Encoders: []types.EncoderSpec{{
			GPIOA:      types.IntPtr(18),
			GPIOB:      types.IntPtr(19),
			ToggleGPIO: types.IntPtr(20),
			Modes: []types.ModeSpec{
				{Kind: "horizontal"},
				{Kind: "zoom", Modifier: "COMMAND", Reverse: true},
				{Kind: "keys", Name: "tabs", CW: &types.ActionSpec{Type: "key", Key: "TAB"}},
			},
		}},
	}
}

func TestSettingsFrom(t *testing.T) {
	s, err := SettingsFrom(samplePad())
	if err != nil {
		t.Fatal(err)
	}
	if !s.ActiveLow || s.Tick != 5*time.Millisecond || s.ReservedGPIO != 22 || s.Board.Name != "pico" {
		t.Fatalf("settings = %+v", s)
	}
	if _, err := SettingsFrom(types.PadConfig{Board: "esp32"}); !errors.Is(err, errcode.UnknownBoard) {
		t.Fatalf("err = %v", err)
	}
	s, _ = SettingsFrom(types.PadConfig{ReservedGPIO: types.IntPtr(-3)})
	if s.ReservedGPIO != NoReservedGPIO {
		t.Fatalf("negative reserved gpio = %d", s.ReservedGPIO)
	}
}

func TestApply(t *testing.T) {
	pad := samplePad()
	s, _ := SettingsFrom(pad)
	ctl := New(s, newHW(), &recSink{})
	if err := Apply(ctl, pad, Callbacks{"hello": func() {}}); err != nil {
		t.Fatal(err)
	}
	btns := ctl.Buttons()
	if len(btns) != 3 || btns[1].GPIO != 16 {
		t.Fatalf("buttons = %+v", btns)
	}
	encs := ctl.Encoders()
	if len(encs) != 1 || encs[0].Label != "encoder_1" || encs[0].Mode != "horizontal" {
		t.Fatalf("encoders = %+v", encs)
	}
}

func TestApplyCollectsEveryError(t *testing.T) {
	pad := types.PadConfig{
		Buttons: []types.ButtonSpec{
			{Label: "ok", GPIO: types.IntPtr(1), Key: "A"},
			{Label: "badkey", GPIO: types.IntPtr(2), Key: "NOPE"},
			{Label: "reserved", GPIO: types.IntPtr(22), Key: "B"},
			{Label: "nocb", GPIO: types.IntPtr(3), Press: &types.ActionSpec{Type: "callback", Callback: "missing"}},
		},
		Encoders: []types.EncoderSpec{
			{Label: "enc", GPIOA: types.IntPtr(4), GPIOB: types.IntPtr(5), Modes: []types.ModeSpec{{Kind: "spin"}}},
		},
	}
	s, _ := SettingsFrom(pad)
	ctl := New(s, newHW(), &recSink{})
	err := Apply(ctl, pad, nil)
	for _, code := range []errcode.Code{errcode.UnknownKey, errcode.ReservedPin, errcode.UnknownCallback, errcode.UnknownMode} {
		if !errors.Is(err, code) {
			t.Fatalf("joined error lacks %s: %v", code, err)
		}
	}
	if len(ctl.Buttons()) != 1 || len(ctl.Encoders()) != 0 {
		t.Fatalf("partial registration: %+v %+v", ctl.Buttons(), ctl.Encoders())
	}
}

func TestActionFromSpec(t *testing.T) {
	cases := []struct {
		spec types.ActionSpec
		want Action
	}{
		{types.ActionSpec{Type: "key", Key: "e"}, Key{Code: keys.E}},
		{types.ActionSpec{Type: "scroll"}, Scroll{Axis: Vertical, Delta: 1}},
		{types.ActionSpec{Type: "scroll", Axis: "horizontal", Modifier: "SHIFT", Delta: -2}, Scroll{Axis: Horizontal, Modifier: keys.LeftShift, Delta: -2}},
		{types.ActionSpec{Type: "zoom", Direction: "out"}, Zoom{Modifier: keys.LeftControl}},
		{types.ActionSpec{Type: "volume"}, Volume{Direction: Up}},
	}
	for _, c := range cases {
		got, err := ActionFromSpec(&c.spec, nil)
		if err != nil {
			t.Fatalf("%+v: %v", c.spec, err)
		}
		if got != c.want {
			t.Fatalf("%+v: got %#v want %#v", c.spec, got, c.want)
		}
	}
	bad := []types.ActionSpec{
		{Type: "teleport"},
		{Type: "combo"},
		{Type: "scroll", Axis: "diagonal"},
		{Type: "volume", Direction: "sideways"},
		{Type: "key", Key: "NOPE"},
	}
	for _, b := range bad {
		if _, err := ActionFromSpec(&b, nil); !errcode.IsConfig(errcode.Of(err)) {
			t.Fatalf("%+v: err = %v", b, err)
		}
	}
	if a, err := ActionFromSpec(nil, nil); a != nil || err != nil {
		t.Fatal("nil spec should give nil action")
	}
}

func TestModeFromSpecNames(t *testing.T) {
	m, err := ModeFromSpec(types.ModeSpec{Kind: "zoom", Modifier: "COMMAND", Reverse: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "zoom" || !m.Reverse || m.CW != (Zoom{Modifier: keys.LeftGUI, In: true}) {
		t.Fatalf("mode = %+v", m)
	}
}
