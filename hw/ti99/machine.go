// Package ti99 assembles the TI-99/4A console around the datamux: the
// devices attached to it, the CRU bus, and the CPU cycle counter.
package ti99

import (
	"fmt"
	"maps"
	"os"

	"ti99/emu/log"
	"ti99/hw/cru"
	"ti99/hw/datamux"
	"ti99/hw/hwio"
)

// ICount is the CPU instruction counter. The datamux consumes its wait
// states from it.
type ICount struct {
	Remaining int64 // cycles left in the current timeslice
	Total     int64 // cycles consumed since power up
}

func (c *ICount) Consume(cycles int) {
	c.Remaining -= int64(cycles)
	c.Total += int64(cycles)
}

type Machine struct {
	CPU ICount
	CRU *cru.Bus
	Mux *datamux.Mux

	ROM        *hwio.Mem
	Scratchpad *hwio.Mem
	Sound      *Sound
	VDP        *VDP
	Speech     *Speech
	GROM       *GROM
	Cartridge  *Cartridge
	Disk       *DiskCard
	Mem32K     *Mem32K

	cfg     Config
	devices datamux.DeviceMap
}

// New builds a machine at power-up state. Call Reset before use.
func New(cfg Config) (*Machine, error) {
	roms, err := loadROMs(cfg.ROMs)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		CRU:        cru.NewBus("cru"),
		ROM:        hwio.NewMem("rom", 0x2000, hwio.MemFlag8ReadOnly),
		Scratchpad: hwio.NewMem("scratchpad", 0x100, hwio.MemFlagReadWrite),
		Sound:      NewSound(),
		VDP:        NewVDP(),
		Speech:     NewSpeech(),
		GROM:       NewGROM(roms.grom),
		Cartridge:  NewCartridge(roms.cartridge),
		Disk:       NewDiskCard(roms.diskDSR),
		Mem32K:     NewMem32K(),
		cfg:        cfg,
	}
	m.ROM.Load(roms.console)
	m.cfg.Settings = maps.Clone(cfg.Settings)
	if m.cfg.Settings == nil {
		m.cfg.Settings = datamux.Settings{}
	}

	m.devices = datamux.DeviceMap{
		"rom":        m.ROM,
		"scratchpad": m.Scratchpad,
		"sound":      m.Sound,
		"vdp":        m.VDP,
		"speech":     m.Speech,
		"grom":       m.GROM,
		"cartridge":  m.Cartridge,
		"disk":       m.Disk,
		"mem32k":     m.Mem32K,
	}

	reg := datamux.NewRegistry(cfg.MaxSlots, cfg.Strict)
	m.Mux, err = datamux.New(reg, &m.CPU, m.CRU, datamux.Config{
		WaitStates: cfg.WaitStates,
		Merge:      cfg.Merge,
		Windows:    cfg.FastRAM,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Device implements datamux.Devices.
func (m *Machine) Device(name string) (hwio.BankIO8, bool) {
	return m.devices.Device(name)
}

// Settings returns the current runtime settings.
func (m *Machine) Settings() datamux.Settings { return m.cfg.Settings }

// SetSetting changes a runtime setting. It takes effect at next Reset, which
// is how peripherals are plugged and unplugged.
func (m *Machine) SetSetting(name string, val uint32) {
	m.cfg.Settings[name] = val
}

// Reset rebuilds the datamux registry and CRU map from the current settings
// and resets all devices. The total cycle count survives resets.
func (m *Machine) Reset() error {
	m.CRU.Reset()
	if err := m.Mux.Registry().Mount(Candidates, m.cfg.Settings, m); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if m.cfg.Settings.Get(SettingPEB)&PEBDisk != 0 {
		if err := m.CRU.Map("disk", DiskCRUBase, DiskCRUBase+0xFE, &m.Disk.CRU); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	m.Mux.Reset(m.cfg.Settings.Get(SettingRAM)&RAM32K16B != 0)
	m.Sound.Reset()
	m.VDP.Reset()
	m.Speech.Reset()
	m.GROM.Reset()
	m.Cartridge.Reset()
	m.Disk.Reset()
	m.CPU.Remaining = 0

	log.ModEmu.InfoZ("machine reset").
		Int("devices", m.Mux.Registry().Len()).
		Bool("fastram", m.Mux.FastRAM()).
		End()
	return nil
}

type romImages struct {
	console, grom, cartridge, diskDSR []byte
}

func loadROMs(cfg ROMConfig) (romImages, error) {
	var (
		imgs romImages
		err  error
	)
	load := func(path string, max int, dst *[]byte) {
		if err != nil || path == "" {
			return
		}
		var buf []byte
		if buf, err = os.ReadFile(path); err != nil {
			err = fmt.Errorf("load rom: %w", err)
			return
		}
		if max > 0 && len(buf) > max {
			err = fmt.Errorf("load rom %s: size %#x exceeds %#x", path, len(buf), max)
			return
		}
		*dst = buf
	}

	load(cfg.Console, 0x2000, &imgs.console)
	load(cfg.GROM, 0x6000, &imgs.grom)
	load(cfg.Cartridge, 0, &imgs.cartridge)
	load(cfg.DiskDSR, 0x2000, &imgs.diskDSR)
	return imgs, err
}
