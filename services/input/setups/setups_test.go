package setups

import (
	"bytes"
	"strings"
	"testing"

	"macropad-go/services/input"
)

type nopHW struct{}

func (nopHW) Level(int) (bool, error)        { return false, nil }
func (nopHW) Position(int, int) (int, error) { return 0, nil }

func TestBuiltinLayoutsApplyCleanly(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names() {
		pad, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		s, err := input.SettingsFrom(pad)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		c := input.New(s, nopHW{}, nil)
		if err := input.Apply(c, pad, Callbacks(&buf)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(c.Buttons()) != len(pad.Buttons) || len(c.Encoders()) != len(pad.Encoders) {
			t.Fatalf("%s: registered %d/%d buttons", name, len(c.Buttons()), len(pad.Buttons))
		}
	}
}

func TestSelectedIsRegistered(t *testing.T) {
	if _, err := Lookup(SelectedName); err != nil {
		t.Fatal(err)
	}
	if _, err := Lookup("missing"); err == nil {
		t.Fatal("Lookup(missing) succeeded")
	}
}

func TestFreememCallback(t *testing.T) {
	var buf bytes.Buffer
	Callbacks(&buf)["freemem"]()
	if !strings.HasPrefix(buf.String(), "Free memory: ") {
		t.Fatalf("output = %q", buf.String())
	}
}
