//go:build !pad_proto

package setups

import "macropad-go/types"

const SelectedName = "desk"

var Selected types.PadConfig = Desk
