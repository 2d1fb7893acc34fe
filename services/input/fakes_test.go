package input

import (
	"errors"
	"strconv"
	"time"

	"macropad-go/services/input/keys"
)

var t0 = time.Unix(1_700_000_000, 0)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

type pair struct{ a, b int }

// fakeHW serves levels and positions from maps. Unset GPIOs read low.
type fakeHW struct {
	levels    map[int]bool
	positions map[pair]int
	failLevel map[int]error
	failPos   map[pair]error
}

func newHW() *fakeHW {
	return &fakeHW{
		levels:    map[int]bool{},
		positions: map[pair]int{},
		failLevel: map[int]error{},
		failPos:   map[pair]error{},
	}
}

func (h *fakeHW) Level(gpio int) (bool, error) {
	if err := h.failLevel[gpio]; err != nil {
		return false, err
	}
	if v, ok := h.levels[gpio]; ok {
		return v, nil
	}
	return false, nil
}

func (h *fakeHW) Position(a, b int) (int, error) {
	if err := h.failPos[pair{a, b}]; err != nil {
		return 0, err
	}
	return h.positions[pair{a, b}], nil
}

var errSink = errors.New("sink down")

// recSink records sink calls as short strings. failUp rejects only
// key releases.
type recSink struct {
	calls  []string
	fail   bool
	failUp bool
}

func (s *recSink) rec(v string) error {
	if s.fail {
		return errSink
	}
	s.calls = append(s.calls, v)
	return nil
}

func (s *recSink) KeyDown(k keys.Code) error            { return s.rec("down " + k.String()) }
func (s *recSink) Scroll(d int) error                   { return s.rec("wheel " + strconv.Itoa(d)) }
func (s *recSink) SendControlCode(c keys.Control) error { return s.rec("cc " + c.String()) }

func (s *recSink) KeyUp(k keys.Code) error {
	if s.failUp {
		return errSink
	}
	return s.rec("up " + k.String())
}

func (s *recSink) reset() { s.calls = nil }

// emitter is a callback that appends its tag to a shared log.
func emitter(log *[]string, tag string) Action {
	return Callback{Name: tag, Fn: func() { *log = append(*log, tag) }}
}

func count(log []string, v string) int {
	n := 0
	for _, s := range log {
		if s == v {
			n++
		}
	}
	return n
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestController(hw Hardware, sink Sink, opts ...Option) *Controller {
	return New(DefaultSettings(), hw, sink, opts...)
}
