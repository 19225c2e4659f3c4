package hwio

import (
	"bytes"
	"testing"
)

func TestMemMirroring(t *testing.T) {
	m := NewMem("scratchpad", 0x100, MemFlagReadWrite)

	m.Write8(0x8300, 0x12)
	for _, addr := range []uint16{0x8000, 0x8100, 0x8200, 0x8300} {
		if got := m.Read8(addr, false); got != 0x12 {
			t.Errorf("Read8(%04X) = %02X, want 12", addr, got)
		}
	}
}

func TestMemReadonly(t *testing.T) {
	m := NewMem("rom", 0x2000, MemFlag8ReadOnly|MemFlagNoROLog)
	m.Load(bytes.Repeat([]byte{0xAA, 0x55}, 0x1000))

	m.Write8(0x0000, 0x00)
	if got := m.Read8(0x0000, false); got != 0xAA {
		t.Errorf("Read8(0000) = %02X, want AA", got)
	}
	if got := m.Read8(0x1FFF, false); got != 0x55 {
		t.Errorf("Read8(1FFF) = %02X, want 55", got)
	}
}

func TestMemWriteCallback(t *testing.T) {
	var gotAddr uint16
	m := NewMem("cart", 0x2000, MemFlag8ReadOnly)
	m.WriteCb = func(addr uint16, val uint8) { gotAddr = addr }

	m.Write8(0x6002, 0x00)
	if gotAddr != 0x6002 {
		t.Errorf("WriteCb addr = %04X, want 6002", gotAddr)
	}
	if m.Data[2] != 0 {
		t.Errorf("write callback should replace the store")
	}
}

func TestNewMemNotPow2(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("NewMem should panic on non pow2 size")
		}
	}()
	NewMem("bad", 0x6000, MemFlagReadWrite)
}

func TestWordHelpers(t *testing.T) {
	if Hi(0xBEEF) != 0xBE || Lo(0xBEEF) != 0xEF || Word(0xBE, 0xEF) != 0xBEEF {
		t.Errorf("Hi/Lo/Word mismatch")
	}
}
