// Package mapcheck sweeps the whole address space of a mounted datamux
// registry looking for decoding conflicts.
package mapcheck

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"ti99/emu/log"
	"ti99/hw/datamux"
	"ti99/hw/hwio"
)

// Conflict reports a set of slots answering the same access. Addr is the
// lowest address at which this set of slots overlaps.
type Conflict struct {
	Addr  uint16
	Write bool
	Slots []string
	Count int // number of addresses where this overlap occurs
}

type Report struct {
	ReadMapped  hwio.AddrSet
	WriteMapped hwio.AddrSet
	Overlaps    hwio.AddrSet
	Conflicts   []Conflict
}

// OK reports whether no address is decoded by more than one device.
func (r *Report) OK() bool { return len(r.Conflicts) == 0 }

const chunkSize = 0x1000

type partial struct {
	read, write, overlaps hwio.AddrSet
	conflicts             map[string]*Conflict
}

func (p *partial) record(slots []datamux.Slot, addr uint16, write bool, idx []int) {
	if write {
		p.write.Add(addr)
	} else {
		p.read.Add(addr)
	}
	if len(idx) < 2 {
		return
	}

	p.overlaps.Add(addr)
	names := make([]string, len(idx))
	for i, si := range idx {
		names[i] = slots[si].Name
	}
	key := strings.Join(names, ",")
	if write {
		key = "w:" + key
	}
	if c, ok := p.conflicts[key]; ok {
		c.Count++
		return
	}
	p.conflicts[key] = &Conflict{Addr: addr, Write: write, Slots: names, Count: 1}
}

// Sweep decodes every address for reads and writes. The registry must not be
// remounted while the sweep runs: chunks of the address space are decoded
// concurrently.
func Sweep(ctx context.Context, reg *datamux.Registry) (*Report, error) {
	const nchunks = hwio.AddrSpace / chunkSize
	parts := make([]*partial, nchunks)

	slots := reg.Slots()
	g, ctx := errgroup.WithContext(ctx)
	for n := range nchunks {
		g.Go(func() error {
			p := &partial{conflicts: make(map[string]*Conflict)}
			var idx []int
			for off := range chunkSize {
				addr := uint16(n*chunkSize + off)
				idx = reg.Decode(idx[:0], addr, false)
				p.record(slots, addr, false, idx)
				idx = reg.Decode(idx[:0], addr, true)
				p.record(slots, addr, true, idx)
			}
			parts[n] = p
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{}
	merged := make(map[string]*Conflict)
	for _, p := range parts {
		rep.ReadMapped.Union(&p.read)
		rep.WriteMapped.Union(&p.write)
		rep.Overlaps.Union(&p.overlaps)
		for key, c := range p.conflicts {
			if m, ok := merged[key]; ok {
				m.Count += c.Count
				m.Addr = min(m.Addr, c.Addr)
				continue
			}
			merged[key] = c
		}
	}
	for _, c := range merged {
		rep.Conflicts = append(rep.Conflicts, *c)
	}
	slices.SortFunc(rep.Conflicts, func(a, b Conflict) int {
		if a.Addr != b.Addr {
			return int(a.Addr) - int(b.Addr)
		}
		if a.Write == b.Write {
			return 0
		}
		if !a.Write {
			return -1
		}
		return 1
	})

	for _, c := range rep.Conflicts {
		log.ModMux.WarnZ("decoding conflict").
			Hex16("addr", c.Addr).
			Bool("write", c.Write).
			String("slots", strings.Join(c.Slots, ",")).
			Int("count", c.Count).
			End()
	}
	return rep, nil
}
