package input

import (
	"errors"
	"testing"
	"time"

	"macropad-go/errcode"
	"macropad-go/services/input/keys"
)

func TestAddButtonValidation(t *testing.T) {
	var log []string
	press := emitter(&log, "P")
	cases := []struct {
		name string
		cfg  ButtonConfig
		code errcode.Code
	}{
		{"key and macro", ButtonConfig{Pin: OnGPIO(5), Key: keys.A, Press: press}, errcode.ActionConflict},
		{"neither", ButtonConfig{Pin: OnGPIO(5)}, errcode.ActionConflict},
		{"key with long", ButtonConfig{Pin: OnGPIO(5), Key: keys.A, LongPress: press}, errcode.MacroOnlyField},
		{"key with release", ButtonConfig{Pin: OnGPIO(5), Key: keys.A, Release: press}, errcode.MacroOnlyField},
		{"key with threshold", ButtonConfig{Pin: OnGPIO(5), Key: keys.A, LongPressThreshold: time.Second}, errcode.MacroOnlyField},
		{"long without threshold", ButtonConfig{Pin: OnGPIO(5), Press: press, LongPress: press}, errcode.MissingThreshold},
		{"negative threshold", ButtonConfig{Pin: OnGPIO(5), Press: press, LongPressThreshold: -time.Second}, errcode.InvalidParams},
		{"reserved gpio", ButtonConfig{Pin: OnGPIO(22), Key: keys.A}, errcode.ReservedPin},
		{"reserved physical", ButtonConfig{Pin: OnPin(29), Key: keys.A}, errcode.ReservedPin},
		{"no pin", ButtonConfig{Key: keys.A}, errcode.AmbiguousPin},
		{"unwired pin", ButtonConfig{Pin: OnPin(8), Key: keys.A}, errcode.UnknownPin},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(newHW(), &recSink{})
			if err := ctl.AddButton("existing", ButtonConfig{Pin: OnGPIO(1), Key: keys.B}); err != nil {
				t.Fatal(err)
			}
			err := ctl.AddButton("btn", c.cfg)
			if !errors.Is(err, c.code) {
				t.Fatalf("err = %v want %s", err, c.code)
			}
			if !errcode.IsConfig(errcode.Of(err)) {
				t.Fatalf("%s is not a config code", errcode.Of(err))
			}
			if got := ctl.Buttons(); len(got) != 1 || got[0].Label != "existing" {
				t.Fatalf("binding set changed: %+v", got)
			}
		})
	}
}

func TestAddButtonRequiresLabel(t *testing.T) {
	ctl := newTestController(newHW(), &recSink{})
	if err := ctl.AddButton("", ButtonConfig{Pin: OnGPIO(1), Key: keys.B}); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("err = %v", err)
	}
}

func TestDirectKeyFollowsSwitch(t *testing.T) {
	hw, sink := newHW(), &recSink{}
	ctl := newTestController(hw, sink)
	if err := ctl.AddButton("a", ButtonConfig{Pin: OnGPIO(3), Key: keys.A}); err != nil {
		t.Fatal(err)
	}
	hw.levels[3] = false
	ctl.Tick(at(0))
	hw.levels[3] = true
	for ms := 10; ms <= 2000; ms += 10 {
		ctl.Tick(at(ms))
	}
	hw.levels[3] = false
	ctl.Tick(at(2010))
	ctl.Tick(at(2020))

	if want := []string{"down A", "up A"}; !equal(sink.calls, want) {
		t.Fatalf("calls = %v want %v", sink.calls, want)
	}
}

func TestShortPulse(t *testing.T) {
	hw, sink := newHW(), &recSink{}
	ctl := newTestController(hw, sink)
	var log []string
	err := ctl.AddButton("m", ButtonConfig{
		Pin:                OnGPIO(5),
		Press:              emitter(&log, "P"),
		LongPress:          emitter(&log, "L"),
		Release:            emitter(&log, "R"),
		LongPressThreshold: time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	hw.levels[5] = true
	ctl.Tick(at(0))
	ctl.Tick(at(500))
	ctl.Tick(at(990))
	hw.levels[5] = false
	ctl.Tick(at(1000))
	ctl.Tick(at(5000))

	if want := []string{"P", "R"}; !equal(log, want) {
		t.Fatalf("log = %v want %v", log, want)
	}
}

func TestLongPressFiresOncePerHold(t *testing.T) {
	hw := newHW()
	ctl := newTestController(hw, &recSink{})
	var log []string
	err := ctl.AddButton("m", ButtonConfig{
		Pin:                OnGPIO(5),
		Press:              emitter(&log, "P"),
		LongPress:          emitter(&log, "L"),
		LongPressThreshold: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	for hold := 0; hold < 2; hold++ {
		base := hold * 5000
		hw.levels[5] = true
		for ms := 0; ms <= 1000; ms += 10 {
			ctl.Tick(at(base + ms))
		}
		hw.levels[5] = false
		ctl.Tick(at(base + 1010))
	}
	if count(log, "L") != 2 || count(log, "P") != 2 {
		t.Fatalf("log = %v, want one L per hold", log)
	}
}

// The reference scenario: P at t=0, L at t=1.0, R at t=1.3, no second L.
func TestPressLongReleaseScenario(t *testing.T) {
	hw := newHW()
	ctl := newTestController(hw, &recSink{})
	type stamp struct {
		tag string
		ms  int
	}
	var got []stamp
	var now int
	mark := func(tag string) Action {
		return Callback{Name: tag, Fn: func() { got = append(got, stamp{tag, now}) }}
	}
	err := ctl.AddButton("gp5", ButtonConfig{
		Pin:                OnGPIO(5),
		Press:              mark("P"),
		LongPress:          mark("L"),
		Release:            mark("R"),
		LongPressThreshold: time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	for now = 0; now <= 1400; now += 10 {
		hw.levels[5] = now < 1300
		ctl.Tick(at(now))
	}
	want := []stamp{{"P", 0}, {"L", 1000}, {"R", 1300}}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestActiveLowPolarity(t *testing.T) {
	hw, sink := newHW(), &recSink{}
	s := DefaultSettings()
	s.ActiveLow = true
	ctl := New(s, hw, sink)
	if err := ctl.AddButton("a", ButtonConfig{Pin: OnGPIO(3), Key: keys.A}); err != nil {
		t.Fatal(err)
	}
	hw.levels[3] = true // pulled up, open switch
	ctl.Tick(at(0))
	if len(sink.calls) != 0 {
		t.Fatalf("released switch produced %v", sink.calls)
	}
	hw.levels[3] = false
	ctl.Tick(at(10))
	hw.levels[3] = true
	ctl.Tick(at(20))
	if want := []string{"down A", "up A"}; !equal(sink.calls, want) {
		t.Fatalf("calls = %v want %v", sink.calls, want)
	}
}

func TestDuplicateLabelReplacesInPlace(t *testing.T) {
	hw, sink := newHW(), &recSink{}
	ctl := newTestController(hw, sink)
	for _, l := range []string{"a", "b", "c"} {
		if err := ctl.AddButton(l, ButtonConfig{Pin: OnGPIO(len(l) + int(l[0]-'a')), Key: keys.A}); err != nil {
			t.Fatal(err)
		}
	}
	hw.levels[2] = true
	ctl.Tick(at(0)) // b holds A down
	if err := ctl.AddButton("b", ButtonConfig{Pin: OnGPIO(9), Key: keys.Z}); err != nil {
		t.Fatal(err)
	}
	got := ctl.Buttons()
	if len(got) != 3 || got[1].Label != "b" || got[1].GPIO != 9 {
		t.Fatalf("buttons = %+v", got)
	}
	if want := []string{"down A", "up A"}; !equal(sink.calls, want) {
		t.Fatalf("replaced binding left a key held: %v", sink.calls)
	}
}

func TestButtonWithoutReleaseAction(t *testing.T) {
	hw := newHW()
	ctl := newTestController(hw, &recSink{})
	var log []string
	if err := ctl.AddButton("m", ButtonConfig{Pin: OnGPIO(5), Press: emitter(&log, "P")}); err != nil {
		t.Fatal(err)
	}
	for i, lv := range []bool{true, false, true, false} {
		hw.levels[5] = lv
		ctl.Tick(at(i * 10))
	}
	if want := []string{"P", "P"}; !equal(log, want) {
		t.Fatalf("log = %v", log)
	}
}
