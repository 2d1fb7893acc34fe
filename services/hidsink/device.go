package hidsink

import (
	"context"
	"fmt"

	"github.com/ardnew/softusb/device"
	"github.com/ardnew/softusb/device/class/hid"
	"github.com/ardnew/softusb/device/hal/fifo"
)

// USB identity of the virtual pad.
const (
	VendorID     = 0x1209
	ProductID    = 0x4d50
	Manufacturer = "macropad-go"
	Product      = "Macro Pad"
)

// Interface numbers follow the order interfaces are added to the builder.
const (
	keyboardIface = 0
	mouseIface    = 1
	consumerIface = 2

	keyboardEP = 0x81
	mouseEP    = 0x82
	consumerEP = 0x83
)

// ConsumerReportDescriptor is a single 16-bit consumer usage.
var ConsumerReportDescriptor = []byte{
	0x05, 0x0C, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xA1, 0x01, // Collection (Application)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x03, // Logical Maximum (1023)
	0x19, 0x00, //   Usage Minimum (0)
	0x2A, 0xFF, 0x03, // Usage Maximum (1023)
	0x75, 0x10, //   Report Size (16)
	0x95, 0x01, //   Report Count (1)
	0x81, 0x00, //   Input (Data, Array)
	0xC0, // End Collection
}

// Device is a composite boot keyboard, boot mouse and consumer-control
// device running on a softusb stack.
type Device struct {
	Stack    *device.Stack
	Keyboard *hid.HID
	Mouse    *hid.HID
	Consumer *hid.HID
}

// NewDevice builds the device on a fifo HAL rooted at busDir. The stack
// is not started.
func NewDevice(ctx context.Context, busDir, serial string) (*Device, error) {
	builder := device.NewDeviceBuilder().
		WithVendorProduct(VendorID, ProductID).
		WithStrings(Manufacturer, Product, serial).
		AddConfiguration(1)

	d := &Device{
		Keyboard: hid.New(hid.KeyboardReportDescriptor),
		Mouse:    hid.New(hid.MouseReportDescriptor),
		Consumer: hid.New(ConsumerReportDescriptor),
	}
	d.Keyboard.ConfigureDevice(builder, keyboardEP, hid.SubclassBoot, hid.ProtocolKeyboard)
	d.Mouse.ConfigureDevice(builder, mouseEP, hid.SubclassBoot, hid.ProtocolMouse)
	d.Consumer.ConfigureDevice(builder, consumerEP, hid.SubclassNone, hid.ProtocolNone)

	dev, err := builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build device: %w", err)
	}
	attach := []struct {
		h     *hid.HID
		iface uint8
	}{
		{d.Keyboard, keyboardIface},
		{d.Mouse, mouseIface},
		{d.Consumer, consumerIface},
	}
	for _, a := range attach {
		if err := a.h.AttachToInterface(dev, 1, a.iface); err != nil {
			return nil, fmt.Errorf("attach interface %d: %w", a.iface, err)
		}
	}

	d.Stack = device.NewStack(dev, fifo.New(busDir))
	d.Keyboard.SetStack(d.Stack)
	d.Mouse.SetStack(d.Stack)
	d.Consumer.SetStack(d.Stack)
	return d, nil
}

// Sink returns an output sink writing to d's three interfaces.
func (d *Device) Sink(ctx context.Context, opts ...Option) *Sink {
	return New(ctx, d.Keyboard, d.Mouse, d.Consumer, opts...)
}

// Serve starts the stack, waits for the host to enumerate, then blocks
// until ctx is done.
func (d *Device) Serve(ctx context.Context, connected func()) error {
	if err := d.Stack.Start(ctx); err != nil {
		return fmt.Errorf("start stack: %w", err)
	}
	defer d.Stack.Stop()
	if err := d.Stack.WaitConnect(ctx); err != nil {
		return fmt.Errorf("wait connect: %w", err)
	}
	if connected != nil {
		connected()
	}
	<-ctx.Done()
	return ctx.Err()
}
