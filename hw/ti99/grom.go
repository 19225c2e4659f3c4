package ti99

import (
	"ti99/emu/log"
	"ti99/hw/hwio"
)

// GROM is the set of console graphics ROMs, seen through their shared
// address counter. Each GROM holds 6K in an 8K slice of the 64K GROM space;
// the address counter wraps within the current 8K slice.
//
// Port decoding (A14 selects the port):
//
//	>9800 read data     >9C00 write data
//	>9802 read address  >9C02 write address
type GROM struct {
	Data []byte // GROM space, missing GROMs read as zero

	addr     uint16
	buffer   uint8 // prefetched byte
	lowNext  bool  // next address access targets the low byte
	prefetch bool
}

const gromPortAddress = 0x0002

func NewGROM(image []byte) *GROM {
	g := &GROM{Data: make([]byte, 0x10000)}
	// Only the first 6K of each 8K slice exists.
	for off := 0; off < len(image); off += 0x2000 {
		end := min(off+0x1800, len(image))
		copy(g.Data[off:end], image[off:end])
	}
	g.Reset()
	return g
}

func (g *GROM) Reset() {
	g.addr = 0
	g.buffer = 0
	g.lowNext = false
}

// Address returns the address counter.
func (g *GROM) Address() uint16 { return g.addr }

func (g *GROM) incr() {
	g.addr = g.addr&0xE000 | (g.addr+1)&0x1FFF
}

func (g *GROM) fetch() {
	g.buffer = g.Data[g.addr]
	g.incr()
}

func (g *GROM) Read8(addr uint16, peek bool) uint8 {
	if addr&gromPortAddress != 0 {
		// Address reads return the counter, high byte first.
		var val uint8
		if g.lowNext {
			val = hwio.Lo(g.addr)
		} else {
			val = hwio.Hi(g.addr)
		}
		if !peek {
			g.lowNext = !g.lowNext
		}
		return val
	}

	val := g.buffer
	if !peek {
		g.lowNext = false
		g.fetch()
	}
	return val
}

func (g *GROM) Write8(addr uint16, val uint8) {
	if addr&gromPortAddress != 0 {
		if g.lowNext {
			g.addr = g.addr&0xFF00 | uint16(val)
			g.fetch()
			log.ModGROM.DebugZ("address set").Hex16("addr", g.addr).End()
		} else {
			g.addr = g.addr&0x00FF | uint16(val)<<8
		}
		g.lowNext = !g.lowNext
		return
	}

	log.ModGROM.DebugZ("write to GROM data port ignored").
		Hex16("addr", g.addr).
		Hex8("val", val).
		End()
	g.lowNext = false
	g.incr()
}
