//go:build !rp2040

package platform

import (
	"macropad-go/errcode"
	"macropad-go/services/input"
)

func open(input.Settings) (Pad, error) {
	return nil, errcode.New(errcode.Unsupported, "platform.Open", "no pad hardware on this target; use macropad-sim")
}
