// Package cru implements the TMS9900 communication register unit bus: a narrow
// bit-addressed control bus carried separately from the memory data bus.
//
// Addresses are expressed the way R12 holds them, so card bases read as
// >1000, >1100... and consecutive bits are 2 apart.
package cru

import (
	"fmt"

	"ti99/emu/log"
)

// Device is implemented by anything answering CRU bit accesses.
type Device interface {
	ReadCRU(addr uint16) uint8
	WriteCRU(addr uint16, bit uint8)
}

type mapping struct {
	name       string
	begin, end uint16 // inclusive
	dev        Device
}

// Bus dispatches CRU bit accesses to the device mapped at the address.
type Bus struct {
	Name string
	maps []mapping
}

func NewBus(name string) *Bus {
	return &Bus{Name: name}
}

// Map attaches dev on [begin, end]. Overlapping ranges are rejected.
func (b *Bus) Map(name string, begin, end uint16, dev Device) error {
	if end < begin {
		return fmt.Errorf("cru: invalid range %04X-%04X for %s", begin, end, name)
	}
	for _, m := range b.maps {
		if begin <= m.end && m.begin <= end {
			return fmt.Errorf("cru: %s range %04X-%04X overlaps %s (%04X-%04X)",
				name, begin, end, m.name, m.begin, m.end)
		}
	}

	log.ModCRU.DebugZ("mapping device").
		String("name", name).
		Hex16("begin", begin).
		Hex16("end", end).
		String("bus", b.Name).
		End()

	b.maps = append(b.maps, mapping{name: name, begin: begin, end: end, dev: dev})
	return nil
}

// Reset unmaps all devices.
func (b *Bus) Reset() {
	b.maps = b.maps[:0]
}

func (b *Bus) search(addr uint16) Device {
	for i := range b.maps {
		if addr >= b.maps[i].begin && addr <= b.maps[i].end {
			return b.maps[i].dev
		}
	}
	return nil
}

// ReadCRU returns the bit at addr, 0 if nothing is mapped there.
func (b *Bus) ReadCRU(addr uint16) uint8 {
	dev := b.search(addr)
	if dev == nil {
		log.ModCRU.DebugZ("unmapped read").
			String("bus", b.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	return dev.ReadCRU(addr) & 1
}

// WriteCRU sets the bit at addr. Unmapped writes are ignored.
func (b *Bus) WriteCRU(addr uint16, bit uint8) {
	dev := b.search(addr)
	if dev == nil {
		log.ModCRU.DebugZ("unmapped write").
			String("bus", b.Name).
			Hex16("addr", addr).
			Hex8("bit", bit).
			End()
		return
	}
	dev.WriteCRU(addr, bit&1)
}

// Bits is a bank of CRU output latches, readable back. Bit n lives at
// Base+2*n.
type Bits struct {
	Base    uint16
	Value   uint16
	WriteCb func(n uint, bit uint8)
}

func (c *Bits) ReadCRU(addr uint16) uint8 {
	n := uint((addr - c.Base) >> 1)
	return uint8(c.Value>>n) & 1
}

func (c *Bits) WriteCRU(addr uint16, bit uint8) {
	n := uint((addr - c.Base) >> 1)
	if bit != 0 {
		c.Value |= 1 << n
	} else {
		c.Value &^= 1 << n
	}
	if c.WriteCb != nil {
		c.WriteCb(n, bit)
	}
}
