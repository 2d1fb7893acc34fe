package sim

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"macropad-go/services/input"
	"macropad-go/services/input/keys"
)

// LogSink records every output call, logs it and optionally forwards it
// to another sink.
type LogSink struct {
	log   *zap.Logger
	now   func() time.Time
	start time.Time
	next  input.Sink
	calls []Call
}

// Call is one recorded sink call. Offset is measured from the sink's
// creation.
type Call struct {
	Offset time.Duration
	Op     string
}

func (c Call) String() string {
	return "+" + strconv.FormatInt(c.Offset.Milliseconds(), 10) + "ms " + c.Op
}

// NewLogSink builds a sink stamped by now. next may be nil.
func NewLogSink(log *zap.Logger, now func() time.Time, next input.Sink) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log, now: now, start: now(), next: next}
}

func (s *LogSink) KeyDown(k keys.Code) error {
	s.record("down " + k.String())
	if s.next == nil {
		return nil
	}
	return s.next.KeyDown(k)
}

func (s *LogSink) KeyUp(k keys.Code) error {
	s.record("up " + k.String())
	if s.next == nil {
		return nil
	}
	return s.next.KeyUp(k)
}

func (s *LogSink) Scroll(delta int) error {
	s.record("wheel " + strconv.Itoa(delta))
	if s.next == nil {
		return nil
	}
	return s.next.Scroll(delta)
}

func (s *LogSink) SendControlCode(c keys.Control) error {
	s.record("cc " + c.String())
	if s.next == nil {
		return nil
	}
	return s.next.SendControlCode(c)
}

// Calls returns everything recorded so far.
func (s *LogSink) Calls() []Call { return append([]Call(nil), s.calls...) }

// Ops returns the recorded operations without offsets.
func (s *LogSink) Ops() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Op
	}
	return out
}

func (s *LogSink) record(op string) {
	c := Call{Offset: s.now().Sub(s.start), Op: op}
	s.calls = append(s.calls, c)
	s.log.Debug("Sink call", zap.String("op", op), zap.Duration("at", c.Offset))
}

var _ input.Sink = (*LogSink)(nil)
