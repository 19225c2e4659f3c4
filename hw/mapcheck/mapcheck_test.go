package mapcheck

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ti99/hw/datamux"
	"ti99/hw/hwio"
)

type nopDev struct{}

func (nopDev) Read8(uint16, bool) uint8 { return 0 }
func (nopDev) Write8(uint16, uint8)     {}

func mount(t *testing.T, cands []datamux.Candidate) *datamux.Registry {
	t.Helper()

	dm := datamux.DeviceMap{}
	for _, c := range cands {
		dm[c.Name] = nopDev{}
	}
	reg := datamux.NewRegistry(0, true)
	if err := reg.Mount(cands, nil, dm); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestSweepDisjoint(t *testing.T) {
	reg := mount(t, []datamux.Candidate{
		{Name: "rom", Mask: 0xE000, Select: 0x0000, Flags: hwio.ReadOnlyFlag},
		{Name: "vdp", Mask: 0xFC01, Select: 0x8800, WriteSelect: 0x0400},
		{Name: "grom", Mask: 0xFC01, Select: 0x9800, WriteSelect: 0x0400},
	})

	rep, err := Sweep(context.Background(), reg)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.OK() {
		t.Fatalf("unexpected conflicts: %+v", rep.Conflicts)
	}

	// rom: 0x2000 addresses, vdp and grom: 0x200 even addresses each.
	if got := rep.ReadMapped.Len(); got != 0x2000+0x200+0x200 {
		t.Errorf("read mapped = %#x", got)
	}
	if got := rep.WriteMapped.Len(); got != 0x200+0x200 {
		t.Errorf("write mapped = %#x", got)
	}
	if !rep.WriteMapped.Has(0x9C02) || rep.WriteMapped.Has(0x9802) {
		t.Errorf("grom write port decoded at the wrong address")
	}
}

func TestSweepConflicts(t *testing.T) {
	reg := mount(t, []datamux.Candidate{
		{Name: "cart", Mask: 0xE000, Select: 0x6000},
		{Name: "bank", Mask: 0xF000, Select: 0x7000, Flags: hwio.WriteOnlyFlag},
	})

	rep, err := Sweep(context.Background(), reg)
	if err != nil {
		t.Fatal(err)
	}

	want := []Conflict{
		{Addr: 0x7000, Write: true, Slots: []string{"cart", "bank"}, Count: 0x1000},
	}
	if diff := cmp.Diff(want, rep.Conflicts); diff != "" {
		t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
	}
	if got := rep.Overlaps.Len(); got != 0x1000 {
		t.Errorf("overlaps = %#x, want 0x1000", got)
	}
}

func TestSweepCanceled(t *testing.T) {
	reg := mount(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Sweep(ctx, reg); err == nil {
		t.Errorf("Sweep with canceled context should fail")
	}
}
