package datamux

import (
	"fmt"
	"slices"
)

// Window is an address range served by the 16-bit internal RAM.
type Window struct {
	Base uint16 `toml:"base"`
	Size int    `toml:"size"` // in bytes
}

func (w Window) end() int { return int(w.Base) + w.Size }

// DefaultWindows is the 32K memory expansion layout: 8K in the low memory
// area and 24K in the high memory area.
var DefaultWindows = []Window{
	{Base: 0x2000, Size: 0x2000},
	{Base: 0xA000, Size: 0x6000},
}

type fastWindow struct {
	Window
	off int // first word index in fastRAM.words
}

// fastRAM is the backing store of the 16-bit bypass path, word addressed.
type fastRAM struct {
	windows []fastWindow
	words   []uint16
}

func newFastRAM(windows []Window) (fastRAM, error) {
	if windows == nil {
		windows = DefaultWindows
	}

	sorted := slices.Clone(windows)
	slices.SortFunc(sorted, func(a, b Window) int { return int(a.Base) - int(b.Base) })

	var fr fastRAM
	nwords := 0
	for i, w := range sorted {
		switch {
		case w.Size <= 0 || w.Size&1 != 0 || w.Base&1 != 0:
			return fastRAM{}, fmt.Errorf("fast ram window %04X+%#x: base and size must be even and size > 0", w.Base, w.Size)
		case w.end() > 0x10000:
			return fastRAM{}, fmt.Errorf("fast ram window %04X+%#x: exceeds address space", w.Base, w.Size)
		case i > 0 && int(w.Base) < sorted[i-1].end():
			return fastRAM{}, fmt.Errorf("fast ram window %04X+%#x: overlaps window %04X", w.Base, w.Size, sorted[i-1].Base)
		}
		fr.windows = append(fr.windows, fastWindow{Window: w, off: nwords})
		nwords += w.Size / 2
	}
	fr.words = make([]uint16, nwords)
	return fr, nil
}

// index returns the word index backing addr, if addr lies in a window.
func (fr *fastRAM) index(addr uint16) (int, bool) {
	for i := range fr.windows {
		w := &fr.windows[i]
		if addr >= w.Base && int(addr) < w.end() {
			return w.off + int(addr-w.Base)>>1, true
		}
	}
	return 0, false
}

// Size returns the size in bytes of the fast RAM.
func (fr *fastRAM) size() int { return len(fr.words) * 2 }
