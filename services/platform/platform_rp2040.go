//go:build rp2040

package platform

import (
	"context"
	"io"
	"machine"
	"sync/atomic"

	uartx "github.com/jangala-dev/tinygo-uartx"
	"tinygo.org/x/drivers/encoders"

	"macropad-go/services/diag"
	"macropad-go/services/input"
)

type rp2Pad struct {
	pull machine.PinMode
	pins map[int]machine.Pin
	encs map[[2]int]*encoders.QuadratureDevice
	sink *usbSink
	uart *uartx.UART
	stop atomic.Bool
}

func open(set input.Settings) (Pad, error) {
	p := &rp2Pad{
		pull: machine.PinInputPulldown,
		pins: make(map[int]machine.Pin),
		encs: make(map[[2]int]*encoders.QuadratureDevice),
		sink: newUSBSink(),
		uart: uartx.UART1,
	}
	if set.ActiveLow {
		p.pull = machine.PinInputPullup
	}
	_ = p.uart.Configure(uartx.UARTConfig{
		BaudRate: debugUARTBaud,
		TX:       machine.Pin(debugUARTTX),
		RX:       machine.Pin(debugUARTRX),
	})
	go p.watchUART()
	return p, nil
}

func (p *rp2Pad) pin(gpio int) machine.Pin {
	if pin, ok := p.pins[gpio]; ok {
		return pin
	}
	pin := machine.Pin(gpio)
	pin.Configure(machine.PinConfig{Mode: p.pull})
	p.pins[gpio] = pin
	return pin
}

func (p *rp2Pad) Level(gpio int) (bool, error) {
	if gpio < 0 || gpio > 28 {
		return false, machine.ErrInvalidInputPin
	}
	return p.pin(gpio).Get(), nil
}

func (p *rp2Pad) Position(a, b int) (int, error) {
	key := [2]int{a, b}
	enc, ok := p.encs[key]
	if !ok {
		enc = encoders.NewQuadratureViaInterrupt(machine.Pin(a), machine.Pin(b))
		enc.Configure(encoders.QuadratureConfig{Precision: 4})
		p.encs[key] = enc
	}
	return enc.Position(), nil
}

// pulldownPins configures each pin as a pulled-down input on first read.
type pulldownPins map[int]machine.Pin

func (m pulldownPins) Level(gpio int) (bool, error) {
	if gpio < 0 || gpio > 28 {
		return false, machine.ErrInvalidInputPin
	}
	pin, ok := m[gpio]
	if !ok {
		pin = machine.Pin(gpio)
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
		m[gpio] = pin
	}
	return pin.Get(), nil
}

func (p *rp2Pad) Monitor() diag.Reader { return pulldownPins{} }

func (p *rp2Pad) EditMode(gpio int) bool {
	pin := machine.Pin(gpio)
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return pin.Get()
}

func (p *rp2Pad) Sink() input.Sink             { return p.sink }
func (p *rp2Pad) StopSignal() input.StopSignal { return input.StopFunc(p.stopRequested) }
func (p *rp2Pad) Console() io.Writer           { return machine.Serial }

func (p *rp2Pad) stopRequested() bool {
	return p.stop.Load() || machine.Serial.Buffered() > 0
}

// watchUART latches the stop flag on the first received byte.
func (p *rp2Pad) watchUART() {
	var buf [1]byte
	for {
		n, err := p.uart.RecvSomeContext(context.Background(), buf[:])
		if err != nil {
			return
		}
		if n > 0 {
			p.stop.Store(true)
			return
		}
	}
}
