package ti99

import (
	"ti99/emu/log"
	"ti99/hw/hwio"
)

// Sound is the SN76496 write port at >8400. Only the register file is kept;
// tone generation is not emulated.
type Sound struct {
	hwio.Reg8

	Tones   [4]uint16 // 10-bit tone dividers (noise control in [3])
	Volumes [4]uint8  // 4-bit attenuations

	latch uint8 // register selected by the last command byte
}

func NewSound() *Sound {
	s := &Sound{}
	s.Reg8 = hwio.Reg8{
		Name:    "sound",
		Flags:   hwio.WriteOnlyFlag,
		WriteCb: s.write,
	}
	return s
}

func (s *Sound) Reset() {
	s.Tones = [4]uint16{}
	s.Volumes = [4]uint8{0xF, 0xF, 0xF, 0xF}
	s.latch = 0
}

func (s *Sound) write(_, val uint8) {
	if val&0x80 != 0 {
		s.latch = (val >> 4) & 0x07
		ch := s.latch >> 1
		if s.latch&1 != 0 {
			s.Volumes[ch] = val & 0x0F
		} else {
			s.Tones[ch] = s.Tones[ch]&0x3F0 | uint16(val&0x0F)
		}
	} else if s.latch&1 == 0 {
		ch := s.latch >> 1
		s.Tones[ch] = s.Tones[ch]&0x00F | uint16(val&0x3F)<<4
	}

	log.ModSound.DebugZ("write").
		Hex8("val", val).
		Uint("reg", uint(s.latch)).
		End()
}
