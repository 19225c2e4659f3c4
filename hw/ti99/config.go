package ti99

import "ti99/hw/datamux"

// Config describes the machine assembly.
type Config struct {
	Strict     bool              `toml:"strict"`      // unknown devices fail the reset
	MaxSlots   int               `toml:"max_slots"`   // datamux registry capacity
	WaitStates int               `toml:"wait_states"` // per byte access, 0 for default
	Merge      datamux.MergeMode `toml:"merge"`

	Settings datamux.Settings `toml:"settings"`
	FastRAM  []datamux.Window `toml:"fastram"`
	ROMs     ROMConfig        `toml:"roms"`
}

// ROMConfig holds paths to ROM images. Empty paths leave the ROM blank.
type ROMConfig struct {
	Console   string `toml:"console"`
	GROM      string `toml:"grom"`
	Cartridge string `toml:"cartridge"`
	DiskDSR   string `toml:"disk_dsr"`
}

// DefaultConfig is a console with speech and the 16-bit 32K expansion.
func DefaultConfig() Config {
	return Config{
		MaxSlots: datamux.DefaultMaxSlots,
		Settings: datamux.Settings{
			SettingRAM:    RAM32K16B,
			SettingSpeech: 1,
		},
	}
}
