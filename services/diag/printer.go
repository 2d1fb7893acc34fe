package diag

import (
	"context"
	"io"
	"strconv"

	"macropad-go/bus"
	"macropad-go/types"
)

// Printer writes one "[input] ..." line per engine event.
type Printer struct {
	w   io.Writer
	sub *bus.Subscription
}

// NewPrinter subscribes to input/# on conn.
func NewPrinter(conn *bus.Connection, w io.Writer) *Printer {
	return &Printer{w: w, sub: conn.Subscribe(bus.T("input", bus.MultiWild))}
}

// Drain prints what is queued without blocking and returns the count.
func (p *Printer) Drain() int {
	n := 0
	for {
		select {
		case m, ok := <-p.sub.Channel():
			if !ok {
				return n
			}
			p.print(m)
			n++
		default:
			return n
		}
	}
}

// Run prints until ctx is done or the subscription is closed.
func (p *Printer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-p.sub.Channel():
			if !ok {
				return
			}
			p.print(m)
		}
	}
}

func (p *Printer) Close() { p.sub.Unsubscribe() }

func (p *Printer) print(m *bus.Message) {
	if s, ok := Format(m); ok {
		_, _ = io.WriteString(p.w, s+"\n")
	}
}

// Format renders an input/... message. Unknown payloads give false.
func Format(m *bus.Message) (string, bool) {
	var s string
	switch v := m.Payload.(type) {
	case types.ButtonEvent:
		edge, _ := m.Topic.At(3).(string)
		s = "button " + v.Label + " " + edge
		switch edge {
		case "pressed":
			s += " GP" + strconv.Itoa(v.GPIO)
		case "released", "long":
			s += " after " + strconv.FormatInt(v.HeldMs, 10) + "ms"
		}
		if v.Action != "" {
			s += ": " + v.Action
		}
	case types.EncoderEvent:
		dir, _ := m.Topic.At(3).(string)
		s = "encoder " + v.Label + " " + dir + " delta=" + strconv.Itoa(v.Delta) + " pos=" + strconv.Itoa(v.Position) + " [" + v.Mode + "]"
		if v.Action != "" {
			s += ": " + v.Action
		}
	case types.ModeEvent:
		s = "encoder " + v.Label + " mode " + strconv.Itoa(v.Index) + " " + v.Name
	case types.FaultEvent:
		s = "fault " + v.Label + " #" + strconv.Itoa(v.Count) + ": " + v.Error
		if v.Disabled {
			s += " (disabled)"
		}
	case types.InputState:
		s = "state " + v.Level + " buttons=" + strconv.Itoa(v.Buttons) + " encoders=" + strconv.Itoa(v.Encoders)
		if v.Status != "" {
			s += " " + v.Status
		}
	default:
		return "", false
	}
	return "[input] " + s, true
}
