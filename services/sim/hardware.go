package sim

import (
	"strconv"
	"sync"
	"time"

	"macropad-go/errcode"
)

// Hardware is an in-memory pin bank. Unset pins read low and unset
// encoders sit at zero.
type Hardware struct {
	mu        sync.Mutex
	levels    map[int]bool
	positions map[[2]int]int
	broken    map[int]bool
}

func NewHardware() *Hardware {
	return &Hardware{
		levels:    make(map[int]bool),
		positions: make(map[[2]int]int),
		broken:    make(map[int]bool),
	}
}

func (h *Hardware) Level(gpio int) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.broken[gpio] {
		return false, errcode.New(errcode.ReadFailed, "level", "GP"+strconv.Itoa(gpio))
	}
	return h.levels[gpio], nil
}

func (h *Hardware) Position(a, b int) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.broken[a] || h.broken[b] {
		return 0, errcode.New(errcode.ReadFailed, "position", "GP"+strconv.Itoa(a)+"/GP"+strconv.Itoa(b))
	}
	return h.positions[[2]int{a, b}], nil
}

func (h *Hardware) SetLevel(gpio int, high bool) {
	h.mu.Lock()
	h.levels[gpio] = high
	h.mu.Unlock()
}

func (h *Hardware) SetPosition(a, b, pos int) {
	h.mu.Lock()
	h.positions[[2]int{a, b}] = pos
	h.mu.Unlock()
}

// Break makes every read touching gpio fail.
func (h *Hardware) Break(gpio int) {
	h.mu.Lock()
	h.broken[gpio] = true
	h.mu.Unlock()
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock { return &Clock{now: start} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
