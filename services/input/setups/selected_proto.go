//go:build pad_proto

package setups

import "macropad-go/types"

const SelectedName = "proto"

var Selected types.PadConfig = Proto
