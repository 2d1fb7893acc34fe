package main

import (
	"context"
	"time"

	"macropad-go/bus"
	"macropad-go/services/diag"
	"macropad-go/services/input"
	"macropad-go/services/input/setups"
	"macropad-go/services/platform"
)

const monitorPeriod = 10 * time.Millisecond

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	println("[main] layout", setups.SelectedName)
	set, err := input.SettingsFrom(setups.Selected)
	if err != nil {
		println("[main] settings:", err.Error())
		return
	}
	pad, err := platform.Open(set)
	if err != nil {
		println("[main] platform:", err.Error())
		return
	}

	if set.ReservedGPIO != input.NoReservedGPIO && pad.EditMode(set.ReservedGPIO) {
		println("[main] edit mode: monitoring GPIO")
		m := diag.NewMonitor(pad.Monitor(), set.Board, pad.Console(), nil, platform.DebugUARTPins()...)
		_ = m.Run(ctx, monitorPeriod, pad.StopSignal())
		return
	}

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)
	printer := diag.NewPrinter(b.NewConnection("console"), pad.Console())
	go printer.Run(ctx)

	ctl := input.New(set, pad, pad.Sink(), input.WithBus(b), input.WithStopSignal(pad.StopSignal()))
	if err := input.Apply(ctl, setups.Selected, setups.Callbacks(pad.Console())); err != nil {
		// Bad bindings are skipped; the rest of the pad still works.
		println("[main] layout errors:", err.Error())
	}

	println("[main] running; send any byte to stop")
	if err := ctl.Run(ctx); err != nil {
		println("[main] stopped:", err.Error())
		return
	}
	println("[main] stopped")
}
