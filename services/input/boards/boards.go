// Package boards describes the connector pinout of supported boards:
// which physical connector pins are wired to which logical GPIOs.
package boards

import (
	"sort"

	"macropad-go/errcode"
)

// Board is an immutable physical-pin to GPIO table.
type Board struct {
	Name     string
	MaxGPIO  int // highest GPIO number the SoC exposes
	toGPIO   map[int]int
	toPhys   map[int]int
	physical []int // sorted
}

// New validates that pins is a bijection and returns the board.
func New(name string, maxGPIO int, pins map[int]int) (*Board, error) {
	b := &Board{
		Name:    name,
		MaxGPIO: maxGPIO,
		toGPIO:  make(map[int]int, len(pins)),
		toPhys:  make(map[int]int, len(pins)),
	}
	for phys, gpio := range pins {
		if gpio < 0 || gpio > maxGPIO {
			return nil, errcode.New(errcode.InvalidParams, "boards.New", name+": gpio out of range")
		}
		if _, dup := b.toPhys[gpio]; dup {
			return nil, errcode.New(errcode.InvalidParams, "boards.New", name+": gpio wired to more than one physical pin")
		}
		b.toGPIO[phys] = gpio
		b.toPhys[gpio] = phys
		b.physical = append(b.physical, phys)
	}
	sort.Ints(b.physical)
	return b, nil
}

func must(b *Board, err error) *Board {
	if err != nil {
		panic(err)
	}
	return b
}

// GPIO returns the GPIO wired to physical connector pin phys.
func (b *Board) GPIO(phys int) (int, bool) {
	g, ok := b.toGPIO[phys]
	return g, ok
}

// Physical returns the connector pin for gpio.
func (b *Board) Physical(gpio int) (int, bool) {
	p, ok := b.toPhys[gpio]
	return p, ok
}

// HasGPIO reports whether gpio is broken out on the connector.
func (b *Board) HasGPIO(gpio int) bool {
	_, ok := b.toPhys[gpio]
	return ok
}

// Pin is one row of the pinout.
type Pin struct {
	Physical int
	GPIO     int
}

// Pins lists the wired pins ordered by physical pin number.
func (b *Board) Pins() []Pin {
	out := make([]Pin, 0, len(b.physical))
	for _, p := range b.physical {
		out = append(out, Pin{Physical: p, GPIO: b.toGPIO[p]})
	}
	return out
}

// GPIOs lists the wired GPIOs in ascending order.
func (b *Board) GPIOs() []int {
	out := make([]int, 0, len(b.toPhys))
	for g := range b.toPhys {
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}

// Pico is the Raspberry Pi Pico (RP2040). GP23..GP25 drive on-board
// functions and are not on the connector.
var Pico = must(New("pico", 29, map[int]int{
	1: 0, 2: 1, 4: 2, 5: 3, 6: 4, 7: 5, 9: 6, 10: 7,
	11: 8, 12: 9, 14: 10, 15: 11, 16: 12, 17: 13, 19: 14, 20: 15,
	21: 16, 22: 17, 24: 18, 25: 19, 26: 20, 27: 21, 29: 22,
	31: 26, 32: 27, 34: 28,
}))

var registry = map[string]*Board{
	Pico.Name: Pico,
}

// Lookup returns a registered board by name.
func Lookup(name string) (*Board, error) {
	if b, ok := registry[name]; ok {
		return b, nil
	}
	return nil, errcode.New(errcode.UnknownBoard, "boards.Lookup", name)
}
