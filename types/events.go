package types

// ------------------------
// Input diagnostics (published on the bus)
// ------------------------

// InputState is retained on input/state.
type InputState struct {
	Level    string `json:"level"` // "idle", "running", "stopped"
	Status   string `json:"status,omitempty"`
	Buttons  int    `json:"buttons"`
	Encoders int    `json:"encoders"`
	TSms     int64  `json:"ts_ms"`
}

// ButtonEvent is published on input/button/<label>/<pressed|released|long>.
type ButtonEvent struct {
	Label  string `json:"label"`
	GPIO   int    `json:"gpio"`
	Action string `json:"action,omitempty"`
	HeldMs int64  `json:"held_ms,omitempty"`
	TSms   int64  `json:"ts_ms"`
}

// EncoderEvent is published on input/encoder/<label>/<cw|ccw>.
type EncoderEvent struct {
	Label    string `json:"label"`
	Mode     string `json:"mode"`
	Position int    `json:"position"`
	Delta    int    `json:"delta"`
	Action   string `json:"action,omitempty"`
	TSms     int64  `json:"ts_ms"`
}

// ModeEvent is published on input/encoder/<label>/mode.
type ModeEvent struct {
	Label string `json:"label"`
	Index int    `json:"index"`
	Name  string `json:"name"`
	TSms  int64  `json:"ts_ms"`
}

// FaultEvent is published on input/fault/<label>.
type FaultEvent struct {
	Label    string `json:"label"`
	Error    string `json:"error"`
	Count    int    `json:"count"`
	Disabled bool   `json:"disabled,omitempty"`
	TSms     int64  `json:"ts_ms"`
}

// PinLevel is published on diag/gpio/<n> by the GPIO monitor.
type PinLevel struct {
	GPIO int   `json:"gpio"`
	High bool  `json:"high"`
	TSms int64 `json:"ts_ms"`
}
