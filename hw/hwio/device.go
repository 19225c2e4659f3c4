package hwio

// Device is a BankIO8 built from callbacks, for peripherals decoding the
// address inside the window they're mounted at. Callbacks receive the address
// reduced by Mask (unchanged if Mask is 0).
type Device struct {
	Name  string
	Flags RWFlags
	Mask  uint16

	ReadCb  func(off uint16, peek bool) uint8
	WriteCb func(off uint16, val uint8)
}

func (d *Device) offset(addr uint16) uint16 {
	if d.Mask == 0 {
		return addr
	}
	return addr & d.Mask
}

func (d *Device) Read8(addr uint16, peek bool) uint8 {
	if d.ReadCb == nil || !d.Flags.allowRead(d.Name, addr, peek) {
		return 0
	}
	return d.ReadCb(d.offset(addr), peek)
}

func (d *Device) Write8(addr uint16, val uint8) {
	if d.WriteCb == nil || !d.Flags.allowWrite(d.Name, addr, val) {
		return
	}
	d.WriteCb(d.offset(addr), val)
}
