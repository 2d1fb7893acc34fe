package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"macropad-go/bus"
	"macropad-go/services/diag"
	"macropad-go/services/hidsink"
	"macropad-go/services/input"
	"macropad-go/services/input/setups"
	"macropad-go/services/platform"
	"macropad-go/services/sim"
	"macropad-go/types"
)

// env is what PersistentPreRunE prepares for every subcommand.
type env struct {
	log    *zap.Logger
	pad    types.PadConfig
	source string
}

type envProvider func() *env

func newRootCmd() *cobra.Command {
	var (
		layout  string
		setup   string
		verbose bool
		e       *env
	)
	root := &cobra.Command{
		Use:           "macropad-sim",
		Short:         "Macro pad input engine simulator",
		Long:          `Runs the macro pad input engine on the host: validate layouts, replay scripted pin changes and expose the pad as a virtual USB HID device.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&layout, "layout", "", "YAML layout file (overrides --setup)")
	root.PersistentFlags().StringVar(&setup, "setup", setups.SelectedName, "built-in layout: "+strings.Join(setups.Names(), ", "))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(verbose)
		if err != nil {
			return err
		}
		e = &env{log: log}
		if layout != "" {
			e.pad, err = sim.LoadPad(layout)
			e.source = layout
		} else {
			e.pad, err = setups.Lookup(setup)
			e.source = setup
		}
		return err
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if e != nil {
			_ = e.log.Sync()
		}
	}

	provider := func() *env { return e }
	root.AddCommand(newCheckCmd(provider))
	root.AddCommand(newRunCmd(provider))
	root.AddCommand(newMonitorCmd(provider))
	root.AddCommand(newPinsCmd(provider))
	root.AddCommand(newUSBCmd(provider))
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log.Named("macropad"), nil
}

func newCheckCmd(env envProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a layout",
		Long:  `Binds every button and encoder of the layout and lists each configuration error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			rig, err := sim.NewRig(e.log, e.pad, setups.Callbacks(io.Discard), nil)
			if rig == nil {
				return err
			}
			out := cmd.OutOrStdout()
			errs := flatten(err)
			for _, x := range errs {
				fmt.Fprintln(out, "error:", x)
			}
			fmt.Fprintf(out, "%s: %d buttons, %d encoders bound, %d errors\n",
				e.source, len(rig.Controller.Buttons()), len(rig.Controller.Encoders()), len(errs))
			if len(errs) > 0 {
				return fmt.Errorf("%s: %d configuration errors", e.source, len(errs))
			}
			return nil
		},
	}
}

func newRunCmd(env envProvider) *cobra.Command {
	var events bool
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a script through the engine",
		Long:  `Replays scripted pin levels and encoder positions on a virtual clock and prints every HID call the engine makes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			script, err := sim.LoadScript(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			b := bus.NewBus(64)
			rig, err := sim.NewRig(e.log, e.pad, setups.Callbacks(out), nil, input.WithBus(b))
			if err != nil {
				return err
			}
			var printer *diag.Printer
			if events {
				printer = diag.NewPrinter(b.NewConnection("printer"), out)
				defer printer.Close()
			}
			printed := 0
			flush := func() {
				calls := rig.Sink.Calls()
				for _, c := range calls[printed:] {
					fmt.Fprintln(out, c)
				}
				printed = len(calls)
				if printer != nil {
					printer.Drain()
				}
			}
			rig.AfterTick = func(time.Time) { flush() }
			err = rig.Play(cmd.Context(), e.log, script)
			flush()
			return err
		},
	}
	cmd.Flags().BoolVar(&events, "events", false, "also print engine events")
	return cmd
}

func newMonitorCmd(env envProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor <script>",
		Short: "Replay a script through the GPIO monitor",
		Long:  `Runs the edit-mode GPIO monitor against scripted pin levels.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			script, err := sim.LoadScript(args[0])
			if err != nil {
				return err
			}
			set, err := input.SettingsFrom(e.pad)
			if err != nil {
				return err
			}
			hw, clock := sim.NewHardware(), sim.NewClock(sim.Epoch)
			m := diag.NewMonitor(hw, set.Board, cmd.OutOrStdout(), nil, platform.DebugUARTPins()...)
			p := sim.NewPlayer(e.log, hw, clock, set.Tick, func(now time.Time) { m.Poll(now) })
			return p.Play(cmd.Context(), script)
		},
	}
}

func newPinsCmd(env envProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "pins",
		Short: "Print the board pin table",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := input.SettingsFrom(env().pad)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (GP0-GP%d)\n", set.Board.Name, set.Board.MaxGPIO)
			for _, p := range set.Board.Pins() {
				note := ""
				if p.GPIO == set.ReservedGPIO {
					note = "  reserved"
				}
				fmt.Fprintf(out, "pin %2d  GP%-2d%s\n", p.Physical, p.GPIO, note)
			}
			return nil
		},
	}
}

func newUSBCmd(env envProvider) *cobra.Command {
	var (
		serial  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "usb <bus-dir> <script>",
		Short: "Expose the pad as a virtual USB HID device",
		Long:  `Builds a composite keyboard, mouse and consumer-control device on a softusb fifo bus, waits for a host to enumerate it and replays the script in real time.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			script, err := sim.LoadScript(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			dev, err := hidsink.NewDevice(ctx, args[0], serial)
			if err != nil {
				return err
			}
			rig, err := sim.NewRig(e.log, e.pad, setups.Callbacks(cmd.OutOrStdout()), dev.Sink(ctx, hidsink.WithTimeout(timeout)))
			if err != nil {
				return err
			}
			rig.Paced = true

			log := e.log.Named("usb")
			connected := make(chan struct{})
			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				log.Info("Waiting for host", zap.String("bus", args[0]))
				return dev.Serve(groupCtx, func() { close(connected) })
			})
			group.Go(func() error {
				select {
				case <-groupCtx.Done():
					return nil
				case <-connected:
				}
				log.Info("Host connected, replaying", zap.Int("steps", len(script.Steps)))
				defer cancel()
				return rig.Play(groupCtx, log, script)
			})
			err = group.Wait()
			if errors.Is(err, context.Canceled) && cmd.Context().Err() == nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&serial, "serial", "0001", "USB serial number string")
	cmd.Flags().DurationVar(&timeout, "transfer-timeout", hidsink.DefaultTimeout, "per-report write timeout")
	return cmd
}

// flatten splits errors.Join output back into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
