package hwio

import (
	"fmt"
	"math/bits"
)

// AddrSpace is the size of the TMS9900 logical address space.
const AddrSpace = 0x10000

const numWords = AddrSpace / 64

// AddrSet is a set of addresses. The zero value is an empty set.
type AddrSet struct {
	words [numWords]uint64
}

func (s *AddrSet) Add(addr uint16)      { s.words[addr>>6] |= 1 << (addr & 63) }
func (s *AddrSet) Remove(addr uint16)   { s.words[addr>>6] &^= 1 << (addr & 63) }
func (s *AddrSet) Has(addr uint16) bool { return s.words[addr>>6]&(1<<(addr&63)) != 0 }

// AddRange adds all addresses from first to last included.
func (s *AddrSet) AddRange(first, last uint16) { s.fill(first, last, true) }

// RemoveRange removes all addresses from first to last included.
func (s *AddrSet) RemoveRange(first, last uint16) { s.fill(first, last, false) }

func (s *AddrSet) fill(first, last uint16, on bool) {
	if first > last {
		panic(fmt.Sprintf("invalid address range %04X-%04X", first, last))
	}
	fw, lw := int(first>>6), int(last>>6)
	for w := fw; w <= lw; w++ {
		mask := ^uint64(0)
		if w == fw {
			mask &= ^uint64(0) << (first & 63)
		}
		if w == lw {
			mask &= ^uint64(0) >> (63 - last&63)
		}
		if on {
			s.words[w] |= mask
		} else {
			s.words[w] &^= mask
		}
	}
}

// Len returns the number of addresses in the set.
func (s *AddrSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Union adds all addresses of o to s.
func (s *AddrSet) Union(o *AddrSet) {
	for i := range s.words {
		s.words[i] |= o.words[i]
	}
}

func (s *AddrSet) Reset() {
	clear(s.words[:])
}

// Range is an inclusive address range.
type Range struct {
	First, Last uint16
}

func (r Range) String() string {
	return fmt.Sprintf("%04X-%04X", r.First, r.Last)
}

// Ranges returns the set as a sorted list of disjoint, non-adjacent ranges.
func (s *AddrSet) Ranges() []Range {
	var (
		rs    []Range
		first uint16
		in    bool
	)
	for a := 0; a < AddrSpace; {
		w := s.words[a>>6]
		if a&63 == 0 && (w == 0 && !in || w == ^uint64(0) && in) {
			a += 64
			continue
		}
		has := w&(1<<(a&63)) != 0
		switch {
		case has && !in:
			first, in = uint16(a), true
		case !has && in:
			rs = append(rs, Range{First: first, Last: uint16(a - 1)})
			in = false
		}
		a++
	}
	if in {
		rs = append(rs, Range{First: first, Last: 0xFFFF})
	}
	return rs
}
