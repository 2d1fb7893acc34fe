// Package hidsink turns engine output into USB HID input reports for the
// softusb device stack, so a host-built pad can enumerate as a real
// keyboard, mouse and consumer-control device.
package hidsink

import (
	"context"
	"sync"
	"time"

	"github.com/ardnew/softusb/device/class/hid"

	"macropad-go/errcode"
	"macropad-go/services/input"
	"macropad-go/services/input/keys"
	"macropad-go/x/mathx"
)

// Reporter sends one input report on an interrupt IN endpoint.
// *hid.HID satisfies it.
type Reporter interface {
	SendReport(ctx context.Context, data []byte) error
}

const DefaultTimeout = 500 * time.Millisecond

const consumerReportSize = 2

// Sink keeps the boot keyboard report state between calls. Scroll and
// consumer reports are one-shot: the sink sends the event and then the
// idle report.
type Sink struct {
	ctx      context.Context
	timeout  time.Duration
	keyboard Reporter
	mouse    Reporter
	consumer Reporter

	mu  sync.Mutex
	kr  hid.KeyboardReport
	buf [hid.KeyboardReportSize]byte
}

type Option func(*Sink)

// WithTimeout bounds each report write.
func WithTimeout(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New builds a sink writing to the three report endpoints. A nil mouse or
// consumer reporter makes the matching calls fail with unsupported.
func New(ctx context.Context, keyboard, mouse, consumer Reporter, opts ...Option) *Sink {
	s := &Sink{ctx: ctx, timeout: DefaultTimeout, keyboard: keyboard, mouse: mouse, consumer: consumer}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sink) KeyDown(k keys.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k.IsModifier() {
		s.kr.Modifiers |= k.ModifierBit()
	} else if !s.kr.SetKey(uint8(k)) {
		return errcode.New(errcode.Rollover, "key_down", k.String())
	}
	return s.sendKeyboard()
}

func (s *Sink) KeyUp(k keys.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k.IsModifier() {
		s.kr.Modifiers &^= k.ModifierBit()
	} else {
		s.kr.ClearKey(uint8(k))
	}
	return s.sendKeyboard()
}

// Scroll sends one wheel report. Deltas beyond the int8 range are clamped.
func (s *Sink) Scroll(delta int) error {
	if s.mouse == nil {
		return errcode.New(errcode.Unsupported, "scroll", "no mouse interface")
	}
	r := hid.MouseReport{Wheel: mathx.Rel8(delta)}
	var b [hid.MouseReportSize]byte
	n := r.MarshalTo(b[:])
	return s.send(s.mouse, b[:n])
}

func (s *Sink) SendControlCode(c keys.Control) error {
	if s.consumer == nil {
		return errcode.New(errcode.Unsupported, "control", "no consumer interface")
	}
	var b [consumerReportSize]byte
	b[0] = byte(c)
	b[1] = byte(c >> 8)
	if err := s.send(s.consumer, b[:]); err != nil {
		return err
	}
	return s.send(s.consumer, []byte{0, 0})
}

// Held returns the current keyboard report.
func (s *Sink) Held() hid.KeyboardReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kr
}

// Reset releases every key and sends the empty report.
func (s *Sink) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kr.Clear()
	return s.sendKeyboard()
}

func (s *Sink) sendKeyboard() error {
	n := s.kr.MarshalTo(s.buf[:])
	return s.send(s.keyboard, s.buf[:n])
}

func (s *Sink) send(r Reporter, data []byte) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	return r.SendReport(ctx, data)
}

var _ input.Sink = (*Sink)(nil)
