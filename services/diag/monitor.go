// Package diag holds the diagnostic side of the pad: the raw GPIO monitor
// used in edit mode and a printer that renders engine events as lines.
package diag

import (
	"context"
	"io"
	"slices"
	"strconv"
	"time"

	"macropad-go/bus"
	"macropad-go/services/input"
	"macropad-go/services/input/boards"
	"macropad-go/types"
)

// Reader reads raw pin levels.
type Reader interface {
	Level(gpio int) (bool, error)
}

// Monitor prints "GPIO n: HIGH|LOW" whenever a wired GPIO changes.
// Pins start out assumed LOW. A pin that fails to read is reported once
// and dropped.
type Monitor struct {
	r     Reader
	w     io.Writer
	conn  *bus.Connection
	pins  []int
	state map[int]bool
}

// NewMonitor watches every GPIO on board's connector except skip, which
// is never read. conn may be nil; otherwise each change is also
// published on diag/gpio/<n>.
func NewMonitor(r Reader, board *boards.Board, w io.Writer, conn *bus.Connection, skip ...int) *Monitor {
	var pins []int
	for _, g := range board.GPIOs() {
		if !slices.Contains(skip, g) {
			pins = append(pins, g)
		}
	}
	m := &Monitor{r: r, w: w, conn: conn, pins: pins, state: make(map[int]bool, len(pins))}
	for _, g := range pins {
		m.state[g] = false
	}
	return m
}

// Pins returns the GPIOs still being watched.
func (m *Monitor) Pins() []int { return append([]int(nil), m.pins...) }

// Poll samples every watched pin once and returns how many changed.
func (m *Monitor) Poll(now time.Time) int {
	changed := 0
	keep := m.pins[:0]
	for _, g := range m.pins {
		v, err := m.r.Level(g)
		if err != nil {
			m.line("Failed to read GPIO " + strconv.Itoa(g) + ": " + err.Error())
			delete(m.state, g)
			continue
		}
		keep = append(keep, g)
		if v == m.state[g] {
			continue
		}
		m.state[g] = v
		changed++
		m.line("GPIO " + strconv.Itoa(g) + ": " + levelName(v))
		if m.conn != nil {
			m.conn.Publish(m.conn.NewMessage(bus.T("diag", "gpio", g), types.PinLevel{GPIO: g, High: v, TSms: now.UnixMilli()}, false))
		}
	}
	m.pins = keep
	return changed
}

// Run polls every period until ctx is done or stop fires.
func (m *Monitor) Run(ctx context.Context, period time.Duration, stop input.StopSignal) error {
	m.line("Monitoring GPIO pins. Send any byte to exit...")
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if stop != nil && stop.StopRequested() {
			m.line("Monitoring stopped.")
			return nil
		}
		m.Poll(time.Now())
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

func (m *Monitor) line(s string) { _, _ = io.WriteString(m.w, s+"\n") }

func levelName(v bool) string {
	if v {
		return "HIGH"
	}
	return "LOW"
}
