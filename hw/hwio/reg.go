package hwio

import "ti99/emu/log"

// RWFlags restricts the accesses a device or register answers to.
type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

func (f RWFlags) CanRead() bool  { return f&WriteOnlyFlag == 0 }
func (f RWFlags) CanWrite() bool { return f&ReadOnlyFlag == 0 }

// allowRead reports whether a read is allowed, logging the rejected ones.
// Peeks are never logged.
func (f RWFlags) allowRead(name string, addr uint16, peek bool) bool {
	if f.CanRead() {
		return true
	}
	if !peek {
		log.ModHwIo.WarnZ("read from write-only port").
			String("name", name).
			Hex16("addr", addr).
			End()
	}
	return false
}

func (f RWFlags) allowWrite(name string, addr uint16, val uint8) bool {
	if f.CanWrite() {
		return true
	}
	log.ModHwIo.WarnZ("write to read-only port").
		String("name", name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
	return false
}

// Reg8 is an 8-bit port answering at every address it's mounted at.
type Reg8 struct {
	Name  string
	Value uint8
	Fixed uint8 // bits writes don't change

	Flags   RWFlags
	ReadCb  func(val uint8, peek bool) uint8
	WriteCb func(old uint8, val uint8)
}

func (reg *Reg8) Read8(addr uint16, peek bool) uint8 {
	if !reg.Flags.allowRead(reg.Name, addr, peek) {
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value, peek)
	}
	return reg.Value
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if !reg.Flags.allowWrite(reg.Name, addr, val) {
		return
	}
	old := reg.Value
	reg.Value = old&reg.Fixed | val&^reg.Fixed
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}
