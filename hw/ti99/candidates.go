package ti99

import (
	"ti99/hw/datamux"
	"ti99/hw/hwio"
)

// Names of the runtime settings consulted when mounting devices.
const (
	SettingRAM       = "ram"
	SettingSpeech    = "speech"
	SettingCartridge = "cartridge"
	SettingPEB       = "peb"
)

// SettingRAM values.
const (
	RAM32K    = 0x01 // 32K expansion card on the 8-bit bus
	RAM32K16B = 0x02 // 32K expansion with the 16-bit modification (fast path)
)

// SettingPEB bits.
const (
	PEBDisk = 0x01
)

// Candidates lists every device that may sit on the datamux, in dispatch
// order. Reset mounts the ones present in the current configuration.
var Candidates = []datamux.Candidate{
	{Name: "rom", Mask: 0xE000, Select: 0x0000, Flags: hwio.ReadOnlyFlag},
	{Name: "mem32k", Mask: 0xE000, Select: 0x2000,
		Cond: datamux.Condition{Setting: SettingRAM, Set: RAM32K, Unset: RAM32K16B}},
	{Name: "disk", Mask: 0xE000, Select: 0x4000, Flags: hwio.ReadOnlyFlag,
		Cond: datamux.Condition{Setting: SettingPEB, Set: PEBDisk}},
	{Name: "cartridge", Mask: 0xE000, Select: 0x6000,
		Cond: datamux.Condition{Setting: SettingCartridge, Set: 1}},
	{Name: "scratchpad", Mask: 0xFC00, Select: 0x8000},
	{Name: "sound", Mask: 0xFC01, Select: 0x8400, Flags: hwio.WriteOnlyFlag},
	{Name: "vdp", Mask: 0xFC01, Select: 0x8800, WriteSelect: 0x0400},
	{Name: "speech", Mask: 0xFC01, Select: 0x9000, WriteSelect: 0x0400,
		Cond: datamux.Condition{Setting: SettingSpeech, Set: 1}},
	{Name: "grom", Mask: 0xFC01, Select: 0x9800, WriteSelect: 0x0400},
	{Name: "mem32k", Mask: 0xE000, Select: 0xA000,
		Cond: datamux.Condition{Setting: SettingRAM, Set: RAM32K, Unset: RAM32K16B}},
	{Name: "mem32k", Mask: 0xC000, Select: 0xC000,
		Cond: datamux.Condition{Setting: SettingRAM, Set: RAM32K, Unset: RAM32K16B}},
}
