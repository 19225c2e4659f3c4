package ti99

import (
	"ti99/emu/log"
	"ti99/hw/cru"
	"ti99/hw/hwio"
)

// CRU base of the disk controller card.
const DiskCRUBase = 0x1100

// DiskCard is the peripheral expansion box disk controller, reduced to its
// DSR ROM: the ROM appears at >4000->5FFF when CRU bit 0 of the card is set.
// The floppy controller itself is not emulated.
type DiskCard struct {
	hwio.Device

	ROM *hwio.Mem
	CRU cru.Bits
}

func NewDiskCard(dsr []byte) *DiskCard {
	d := &DiskCard{ROM: hwio.NewMem("diskdsr", 0x2000, hwio.MemFlag8ReadOnly)}
	d.ROM.Load(dsr)
	d.CRU = cru.Bits{
		Base: DiskCRUBase,
		WriteCb: func(n uint, bit uint8) {
			if n == 0 {
				log.ModPEB.DebugZ("dsr select").Hex8("on", bit).End()
			}
		},
	}
	d.Device = hwio.Device{
		Name:   "disk",
		Flags:  hwio.ReadOnlyFlag,
		Mask:   0x1FFF,
		ReadCb: d.read,
	}
	return d
}

func (d *DiskCard) Reset() {
	d.CRU.Value = 0
}

// Selected reports whether the DSR ROM is mapped in.
func (d *DiskCard) Selected() bool { return d.CRU.Value&1 != 0 }

func (d *DiskCard) read(off uint16, _ bool) uint8 {
	if !d.Selected() {
		return 0
	}
	return d.ROM.Read8(off, false)
}

// Mem32K is the 32K memory expansion card without the 16-bit modification:
// an ordinary 8-bit peripheral, decoded at >2000->3FFF and >A000->FFFF.
type Mem32K struct {
	hwio.Device

	Data [0x8000]uint8
}

func NewMem32K() *Mem32K {
	m := &Mem32K{}
	m.Device = hwio.Device{
		Name:    "mem32k",
		ReadCb:  m.read,
		WriteCb: m.write,
	}
	return m
}

// offset maps >2000->3FFF to 0->1FFF and >A000->FFFF to 2000->7FFF.
func (m *Mem32K) offset(addr uint16) int {
	if addr < 0xA000 {
		return int(addr-0x2000) & 0x1FFF
	}
	return int(addr-0xA000) + 0x2000
}

func (m *Mem32K) read(addr uint16, _ bool) uint8 { return m.Data[m.offset(addr)] }
func (m *Mem32K) write(addr uint16, val uint8)   { m.Data[m.offset(addr)] = val }
