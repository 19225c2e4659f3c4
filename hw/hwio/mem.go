package hwio

import (
	"fmt"

	"ti99/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // read-only accesses
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Mem is a linear memory area answering 8-bit accesses. The buffer size must
// be a power of 2: the address is masked with it, so a small buffer is
// mirrored over the whole range decoded for it.
type Mem struct {
	Name    string              // name of the memory area (for debugging)
	Data    []byte              // actual memory buffer
	Flags   MemFlags            // flags determining how the memory can be accessed
	WriteCb func(uint16, uint8) // optional write callback (if set, the callback is called instead of writing)
}

// NewMem allocates a zeroed memory area of the given size.
func NewMem(name string, size int, flags MemFlags) *Mem {
	if size <= 0 || size&(size-1) != 0 {
		panic(fmt.Sprintf("hwio: memory %q size %#x is not pow2", name, size))
	}
	return &Mem{
		Name:  name,
		Data:  make([]byte, size),
		Flags: flags,
	}
}

func (m *Mem) off(addr uint16) int {
	return int(addr) & (len(m.Data) - 1)
}

func (m *Mem) Read8(addr uint16, _ bool) uint8 {
	return m.Data[m.off(addr)]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	if m.WriteCb != nil {
		m.WriteCb(addr, val)
		return
	}

	switch {
	case m.Flags&MemFlag8ReadOnly == 0:
		m.Data[m.off(addr)] = val
	case m.Flags&MemFlagNoROLog != 0:
		return
	default:
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			String("name", m.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	}
}

// Load copies buf at the start of the memory area, and returns the number of
// bytes copied.
func (m *Mem) Load(buf []byte) int {
	return copy(m.Data, buf)
}
