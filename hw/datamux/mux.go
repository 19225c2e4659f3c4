// Package datamux implements the TI-99/4A data multiplexer: the circuit that
// sits between the 16-bit TMS9900 data bus and the 8-bit peripheral bus.
//
// Every word access from the CPU becomes two byte accesses, odd address
// first, each one costing the CPU some wait states. Attached devices are
// selected by address mask matching (see Registry). An optional 16-bit RAM
// (the 32K memory expansion with the 16-bit modification) bypasses the
// multiplexer entirely for its address windows.
package datamux

import (
	"fmt"
	"io"

	"ti99/emu/log"
	"ti99/hw/cru"
	"ti99/hw/hwio"
)

// DefaultWaitStates is the number of cycles the datamux adds to each byte
// access.
const DefaultWaitStates = 3

// CycleSink receives the cycles consumed by the datamux. It's usually the
// CPU instruction counter.
type CycleSink interface {
	Consume(cycles int)
}

type nopSink struct{}

func (nopSink) Consume(int) {}

// Config holds the construction-time parameters of the datamux.
type Config struct {
	WaitStates int       // cycles per byte access, DefaultWaitStates if 0; negative disables wait states
	Merge      MergeMode // byte write widening
	Windows    []Window  // fast RAM windows, DefaultWindows if nil
}

// Mux is the datamux. It is not safe for concurrent use: all accesses come
// from the CPU emulation loop.
type Mux struct {
	reg   *Registry
	cpu   CycleSink
	cru   cru.Device
	ws    int
	merge MergeMode

	useFast bool
	fast    fastRAM

	latch    uint8 // odd byte of the word being read
	lowByte  uint8 // last odd byte read
	highByte uint8 // last even byte read

	trace   *tracer
	scratch []int
}

// New creates a datamux dispatching to the devices of reg. Cycles are
// consumed on cpu (may be nil), CRU accesses are forwarded to crubus (may be
// nil).
func New(reg *Registry, cpu CycleSink, crubus cru.Device, cfg Config) (*Mux, error) {
	fast, err := newFastRAM(cfg.Windows)
	if err != nil {
		return nil, fmt.Errorf("datamux: %w", err)
	}
	if cpu == nil {
		cpu = nopSink{}
	}

	ws := cfg.WaitStates
	switch {
	case ws == 0:
		ws = DefaultWaitStates
	case ws < 0:
		ws = 0
	}

	return &Mux{
		reg:   reg,
		cpu:   cpu,
		cru:   crubus,
		ws:    ws,
		merge: cfg.Merge,
		fast:  fast,
	}, nil
}

// Reset clears the latch and byte caches and decides whether the fast RAM
// bypass is active until the next reset. Fast RAM contents are preserved.
func (m *Mux) Reset(useFast bool) {
	m.useFast = useFast
	m.latch, m.lowByte, m.highByte = 0, 0, 0

	log.ModMux.DebugZ("reset").
		Bool("fastram", useFast).
		Int("fastram_size", m.fast.size()).
		Int("waitstates", m.ws).
		Stringer("merge", m.merge).
		End()
}

// SetTrace enables access tracing to w, or disables it if w is nil.
func (m *Mux) SetTrace(w io.Writer) {
	if w == nil {
		m.trace = nil
		return
	}
	m.trace = &tracer{w: w}
}

// Registry returns the registry the datamux dispatches to.
func (m *Mux) Registry() *Registry { return m.reg }

// FastRAM reports whether the 16-bit bypass is active.
func (m *Mux) FastRAM() bool { return m.useFast }

// Windows returns the fast RAM windows, sorted by address.
func (m *Mux) Windows() []Window {
	ws := make([]Window, len(m.fast.windows))
	for i := range m.fast.windows {
		ws[i] = m.fast.windows[i].Window
	}
	return ws
}

func (m *Mux) consume() {
	if m.ws != 0 {
		m.cpu.Consume(m.ws)
	}
}

// read8 dispatches a byte read. If no device answers, the bus keeps
// floating at its previous value.
func (m *Mux) read8(addr uint16, floating uint8) uint8 {
	val := floating
	slots := m.reg.slots
	for i := range slots {
		if slots[i].MatchRead(addr) {
			val = slots[i].Read(addr, false)
		}
	}
	if m.trace != nil {
		m.scratch = m.reg.Decode(m.scratch[:0], addr, false)
		m.trace.access('R', addr, val, m.reg, m.scratch, m.ws)
	}
	return val
}

func (m *Mux) write8(addr uint16, val uint8) {
	slots := m.reg.slots
	for i := range slots {
		if slots[i].MatchWrite(addr) {
			slots[i].Write(addr, val)
		}
	}
	if m.trace != nil {
		m.scratch = m.reg.Decode(m.scratch[:0], addr, true)
		m.trace.access('W', addr, val, m.reg, m.scratch, m.ws)
	}
}

// Read16 reads the word at addr. The odd byte is fetched first, then the
// even one, each costing the configured wait states.
func (m *Mux) Read16(addr uint16) uint16 {
	addr &^= 1

	if m.useFast {
		if i, ok := m.fast.index(addr); ok {
			w := m.fast.words[i]
			m.highByte, m.lowByte = hwio.Hi(w), hwio.Lo(w)
			if m.trace != nil {
				m.trace.fast('R', addr, w)
			}
			return w
		}
	}

	m.latch = m.read8(addr+1, m.latch)
	m.consume()

	hi := m.read8(addr, m.highByte)
	m.consume()

	m.lowByte, m.highByte = m.latch, hi
	return hwio.Word(hi, m.latch)
}

// Write16 writes val at addr. When mask selects a single byte, the other
// byte comes from the last word read (see MergeMode). A mask selecting no
// byte writes nothing.
func (m *Mux) Write16(addr uint16, val uint16, mask ByteMask) {
	addr &^= 1

	hi, lo := mask.bytes()
	switch {
	case !hi && !lo:
		return
	case hi && !lo:
		if m.merge == MergeReadBack {
			m.Read16(addr)
		}
		val = val&0xFF00 | uint16(m.lowByte)
	case !hi && lo:
		if m.merge == MergeReadBack {
			m.Read16(addr)
		}
		val = val&0x00FF | uint16(m.highByte)<<8
	}

	if m.useFast {
		if i, ok := m.fast.index(addr); ok {
			m.fast.words[i] = val
			if m.trace != nil {
				m.trace.fast('W', addr, val)
			}
			return
		}
	}

	m.write8(addr+1, hwio.Lo(val))
	m.consume()

	m.write8(addr, hwio.Hi(val))
	m.consume()
}

// Peek16 reads the word at addr without side effects: devices are peeked,
// no cycles are consumed and the datamux state is left untouched.
func (m *Mux) Peek16(addr uint16) uint16 {
	addr &^= 1

	if m.useFast {
		if i, ok := m.fast.index(addr); ok {
			return m.fast.words[i]
		}
	}

	peek := func(addr uint16, floating uint8) uint8 {
		val := floating
		for i := range m.reg.slots {
			if s := &m.reg.slots[i]; s.MatchRead(addr) {
				val = s.Read(addr, true)
			}
		}
		return val
	}

	lo := peek(addr+1, m.latch)
	hi := peek(addr, m.highByte)
	return hwio.Word(hi, lo)
}

// ReadCRU forwards a CRU bit read. The CRU doesn't go through the
// multiplexer: no byte splitting, no wait states.
func (m *Mux) ReadCRU(addr uint16) uint8 {
	if m.cru == nil {
		return 0
	}
	return m.cru.ReadCRU(addr)
}

// WriteCRU forwards a CRU bit write.
func (m *Mux) WriteCRU(addr uint16, bit uint8) {
	if m.cru != nil {
		m.cru.WriteCRU(addr, bit)
	}
}
