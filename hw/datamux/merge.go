package datamux

import "fmt"

//go:generate go tool stringer -type=MergeMode -trimprefix=Merge

// MergeMode selects how byte writes are widened to the word the datamux
// writes to the bus.
type MergeMode int

const (
	// MergeCached merges the new byte with the bytes of the last word read
	// through the datamux, whatever its address was. This is what the
	// console does when the CPU core doesn't emit its read-before-write.
	MergeCached MergeMode = iota

	// MergeReadBack reads the target word first (with its wait states),
	// then merges.
	MergeReadBack
)

func (m MergeMode) MarshalText() ([]byte, error) {
	switch m {
	case MergeCached:
		return []byte("cached"), nil
	case MergeReadBack:
		return []byte("readback"), nil
	}
	return nil, fmt.Errorf("invalid merge mode %d", int(m))
}

func (m *MergeMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cached", "":
		*m = MergeCached
	case "readback":
		*m = MergeReadBack
	default:
		return fmt.Errorf("invalid merge mode %q (want cached or readback)", text)
	}
	return nil
}

// ByteMask tells which bytes of a word are written, with the same meaning as
// a memory mask: set bits are written.
type ByteMask uint16

const (
	WordMask ByteMask = 0xFFFF
	HighByte ByteMask = 0xFF00 // even address only
	LowByte  ByteMask = 0x00FF // odd address only
)

// bytes reports which bytes of the word are selected. Any set bit selects
// its whole byte.
func (bm ByteMask) bytes() (hi, lo bool) {
	return bm&0xFF00 != 0, bm&0x00FF != 0
}
