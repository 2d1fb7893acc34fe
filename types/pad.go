package types

// ------------------------
// Static pad configuration
// ------------------------

// PadConfig is the static layout of one macro pad: board wiring plus the
// ordered button and encoder maps. Order is significant; bindings are
// serviced in the order listed.
type PadConfig struct {
	Board        string        `json:"board,omitempty"`         // "pico" when empty
	ReservedGPIO *int          `json:"reserved_gpio,omitempty"` // mode-select switch; board default when nil
	ActiveLow    bool          `json:"active_low,omitempty"`    // pull-up wiring, pressed reads low
	TickMs       uint16        `json:"tick_ms,omitempty"`
	DryRun       bool          `json:"dry_run,omitempty"` // evaluate actions without emitting them
	Buttons      []ButtonSpec  `json:"buttons,omitempty"`
	Encoders     []EncoderSpec `json:"encoders,omitempty"`
}

// ButtonSpec selects a pin by physical connector number or by GPIO, and
// either a direct key or a macro (press plus optional long/release).
type ButtonSpec struct {
	Label string `json:"label"`
	Pin   *int   `json:"pin,omitempty"`
	GPIO  *int   `json:"gpio,omitempty"`

	Key string `json:"kbd_key,omitempty"`

	Press              *ActionSpec `json:"press,omitempty"`
	Long               *ActionSpec `json:"long,omitempty"`
	Release            *ActionSpec `json:"release,omitempty"`
	LongPressThreshold float64     `json:"long_press_threshold,omitempty"` // seconds
}

type EncoderSpec struct {
	Label string `json:"label,omitempty"` // "encoder_<n>" when empty

	PinA  *int `json:"pin_a,omitempty"`
	PinB  *int `json:"pin_b,omitempty"`
	GPIOA *int `json:"gpio_a,omitempty"`
	GPIOB *int `json:"gpio_b,omitempty"`

	TogglePin  *int `json:"toggle_pin,omitempty"`
	ToggleGPIO *int `json:"toggle_gpio,omitempty"`

	Modes []ModeSpec `json:"modes"`
}

// ModeSpec is one slot in an encoder's mode cycle. Kind is one of
// "horizontal", "vertical", "zoom", "volume" or "keys"; only "keys" reads
// CW/CCW, the others derive both directions from Modifier.
type ModeSpec struct {
	Name     string      `json:"name,omitempty"`
	Kind     string      `json:"kind"`
	Modifier string      `json:"modifier,omitempty"`
	CW       *ActionSpec `json:"cw,omitempty"`
	CCW      *ActionSpec `json:"ccw,omitempty"`
	Reverse  bool        `json:"reverse,omitempty"`
}

// ActionSpec is the declarative form of an action. Type selects the
// variant: "key", "combo", "scroll", "zoom", "volume" or "callback".
type ActionSpec struct {
	Type      string   `json:"type"`
	Key       string   `json:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Axis      string   `json:"axis,omitempty"`      // scroll: "horizontal" | "vertical"
	Modifier  string   `json:"modifier,omitempty"`  // scroll, zoom
	Delta     int      `json:"delta,omitempty"`     // scroll; 1 when zero
	Direction string   `json:"direction,omitempty"` // volume: "up"|"down"; zoom: "in"|"out"
	Callback  string   `json:"callback,omitempty"`  // name in the callback registry
}

// IntPtr is a helper for building specs in Go.
func IntPtr(v int) *int { return &v }
