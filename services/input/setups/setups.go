// Package setups holds the static pad layouts. The firmware is built with
// one of them selected by build tag (pad_proto); the desk layout is the
// default.
package setups

import (
	"sort"

	"macropad-go/errcode"
	"macropad-go/types"
)

var supercombo = []string{"CONTROL", "ALT", "COMMAND", "SHIFT"}

func combo(mods []string, key string) *types.ActionSpec {
	return &types.ActionSpec{Type: "combo", Modifiers: mods, Key: key}
}

func callback(name string) *types.ActionSpec {
	return &types.ActionSpec{Type: "callback", Callback: name}
}

var registry = map[string]types.PadConfig{
	"desk":  Desk,
	"proto": Proto,
}

// Lookup returns a built-in layout by name.
func Lookup(name string) (types.PadConfig, error) {
	if p, ok := registry[name]; ok {
		return p, nil
	}
	return types.PadConfig{}, errcode.New(errcode.InvalidParams, "setups.Lookup", "no layout "+name)
}

// Names lists the built-in layouts.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
