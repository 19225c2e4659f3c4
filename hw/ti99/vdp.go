package ti99

import (
	"ti99/emu/log"
	"ti99/hw/hwio"
)

// VDP models the CPU side of the TMS9918A: its two ports and VRAM.
// Rendering is not emulated.
//
//	>8800 read data     >8C00 write data
//	>8802 read status   >8C02 write address/register
type VDP struct {
	VRAM   *hwio.Mem
	Regs   [8]uint8
	Status hwio.Reg8

	addr    uint16
	buffer  uint8
	first   uint8
	latched bool
}

const vdpPortControl = 0x0002

func NewVDP() *VDP {
	v := &VDP{VRAM: hwio.NewMem("vram", 0x4000, hwio.MemFlagReadWrite)}
	v.Status = hwio.Reg8{
		Name:   "vdpstatus",
		Flags:  hwio.ReadOnlyFlag,
		ReadCb: v.readStatus,
	}
	return v
}

func (v *VDP) Reset() {
	v.Regs = [8]uint8{}
	v.Status.Value = 0
	v.addr, v.buffer, v.first = 0, 0, 0
	v.latched = false
}

func (v *VDP) Address() uint16 { return v.addr }

// readStatus clears the interrupt flag and the address latch.
func (v *VDP) readStatus(val uint8, peek bool) uint8 {
	if !peek {
		v.Status.Value &^= 0x80
		v.latched = false
	}
	return val
}

// SetInterrupt raises the vertical retrace flag.
func (v *VDP) SetInterrupt() { v.Status.Value |= 0x80 }

func (v *VDP) Read8(addr uint16, peek bool) uint8 {
	if addr&vdpPortControl != 0 {
		return v.Status.Read8(addr, peek)
	}

	val := v.buffer
	if !peek {
		v.latched = false
		v.buffer = v.VRAM.Read8(v.addr, false)
		v.addr = (v.addr + 1) & 0x3FFF
	}
	return val
}

func (v *VDP) Write8(addr uint16, val uint8) {
	if addr&vdpPortControl == 0 {
		v.latched = false
		v.VRAM.Write8(v.addr, val)
		v.buffer = val
		v.addr = (v.addr + 1) & 0x3FFF
		return
	}

	if !v.latched {
		v.first = val
		v.latched = true
		return
	}
	v.latched = false

	switch {
	case val&0x80 != 0:
		reg := val & 0x07
		v.Regs[reg] = v.first
		log.ModVDP.DebugZ("register write").
			Uint("reg", uint(reg)).
			Hex8("val", v.first).
			End()
	default:
		v.addr = uint16(val&0x3F)<<8 | uint16(v.first)
		if val&0x40 == 0 {
			// Read setup: prefetch.
			v.buffer = v.VRAM.Read8(v.addr, false)
			v.addr = (v.addr + 1) & 0x3FFF
		}
	}
}
