package input

// Hardware is the pin reading side of the board driver. Both reads are
// pure queries.
type Hardware interface {
	// Level returns the raw electrical level of gpio (true = high).
	Level(gpio int) (bool, error)
	// Position returns the absolute quadrature count of the encoder wired
	// to gpios a and b.
	Position(a, b int) (int, error)
}

// StopSignal is polled once per tick at the loop head.
type StopSignal interface {
	StopRequested() bool
}

// StopFunc adapts a function to StopSignal.
type StopFunc func() bool

func (f StopFunc) StopRequested() bool { return f() }
