package hwio

// Hi and Lo split a big-endian word.
func Hi(v uint16) uint8 { return uint8(v >> 8) }
func Lo(v uint16) uint8 { return uint8(v) }

// Word joins two bytes into a big-endian word.
func Word(hi, lo uint8) uint16 { return uint16(hi)<<8 | uint16(lo) }
