package datamux

import (
	"fmt"
	"testing"

	"ti99/hw/hwio"
)

// events records bus activity in order, shared by stubs and the cycle sink.
type events []string

type stub struct {
	ev     *events
	reads  int
	writes int
	rd     func(addr uint16) uint8

	written []write
}

type write struct {
	Addr uint16
	Val  uint8
}

func (s *stub) Read8(addr uint16, peek bool) uint8 {
	if !peek {
		s.reads++
		if s.ev != nil {
			*s.ev = append(*s.ev, fmt.Sprintf("R %04X", addr))
		}
	}
	if s.rd != nil {
		return s.rd(addr)
	}
	return 0
}

func (s *stub) Write8(addr uint16, val uint8) {
	s.writes++
	s.written = append(s.written, write{addr, val})
	if s.ev != nil {
		*s.ev = append(*s.ev, fmt.Sprintf("W %04X %02X", addr, val))
	}
}

// bytesAt returns a read function answering hi at even addresses and lo at
// odd ones.
func bytesAt(hi, lo uint8) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		if addr&1 == 0 {
			return hi
		}
		return lo
	}
}

type icount struct {
	ev       *events
	consumed int
}

func (c *icount) Consume(cycles int) {
	c.consumed += cycles
	if c.ev != nil {
		*c.ev = append(*c.ev, fmt.Sprintf("C %d", cycles))
	}
}

type testMux struct {
	t testing.TB
	*Mux
	cpu *icount
}

func newTestMux(tb testing.TB, cands []Candidate, settings Settings, devs DeviceMap, cfg Config) *testMux {
	tb.Helper()

	reg := NewRegistry(0, true)
	if err := reg.Mount(cands, settings, devs); err != nil {
		tb.Fatalf("Mount: %v", err)
	}

	cpu := &icount{}
	m, err := New(reg, cpu, nil, cfg)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	m.Reset(false)
	return &testMux{t: tb, Mux: m, cpu: cpu}
}

func (tm *testMux) wantRead16(addr, want uint16) {
	tm.t.Helper()

	if got := tm.Read16(addr); got != want {
		tm.t.Errorf("Read16(%04X) = %04X, want %04X", addr, got, want)
	}
}

func (tm *testMux) wantCycles(want int) {
	tm.t.Helper()

	if tm.cpu.consumed != want {
		tm.t.Errorf("consumed %d cycles, want %d", tm.cpu.consumed, want)
	}
	tm.cpu.consumed = 0
}

func devs(kv ...any) DeviceMap {
	dm := DeviceMap{}
	for i := 0; i < len(kv); i += 2 {
		dm[kv[i].(string)] = kv[i+1].(hwio.BankIO8)
	}
	return dm
}
