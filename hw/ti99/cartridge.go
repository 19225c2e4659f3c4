package ti99

import (
	"ti99/emu/log"
	"ti99/hw/hwio"
)

const cartBankSize = 0x2000

// Cartridge is a ROM cartridge mapped at >6000->7FFF. Images larger than 8K
// are split in banks, selected by writing anywhere in the cartridge space:
// the bank number is taken from the address (>6000 bank 0, >6002 bank 1...).
type Cartridge struct {
	hwio.Mem

	banks [][]byte
	bank  int
}

func NewCartridge(image []byte) *Cartridge {
	nbanks := 1
	for nbanks*cartBankSize < len(image) {
		nbanks <<= 1
	}

	c := &Cartridge{banks: make([][]byte, nbanks)}
	for i := range c.banks {
		c.banks[i] = make([]byte, cartBankSize)
		if off := i * cartBankSize; off < len(image) {
			copy(c.banks[i], image[off:])
		}
	}
	c.Mem = hwio.Mem{
		Name:    "cartridge",
		Data:    c.banks[0],
		Flags:   hwio.MemFlag8ReadOnly,
		WriteCb: c.selectBank,
	}
	return c
}

func (c *Cartridge) Reset() {
	c.bank = 0
	c.Data = c.banks[0]
}

func (c *Cartridge) Banks() int { return len(c.banks) }
func (c *Cartridge) Bank() int  { return c.bank }

func (c *Cartridge) selectBank(addr uint16, _ uint8) {
	c.bank = int(addr>>1) & (len(c.banks) - 1)
	c.Data = c.banks[c.bank]
	log.ModCart.DebugZ("bank switch").
		Hex16("addr", addr).
		Int("bank", c.bank).
		End()
}
