package emu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ti99/hw/datamux"
	"ti99/hw/ti99"
)

func TestLoadConfig(t *testing.T) {
	const content = `
[machine]
strict = true
max_slots = 12
merge = "readback"

[machine.settings]
ram = 1
peb = 1

[[machine.fastram]]
base = 0x2000
size = 0x2000

[machine.roms]
console = "/roms/994arom.bin"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := ti99.Config{
		Strict:   true,
		MaxSlots: 12,
		Merge:    datamux.MergeReadBack,
		Settings: datamux.Settings{
			// Defaults are merged with the file.
			ti99.SettingRAM:    1,
			ti99.SettingSpeech: 1,
			ti99.SettingPEB:    1,
		},
		FastRAM: []datamux.Window{{Base: 0x2000, Size: 0x2000}},
		ROMs:    ti99.ROMConfig{Console: "/roms/994arom.bin"},
	}
	if diff := cmp.Diff(want, cfg.Machine); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Errorf("LoadConfig of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[machine]\nmerge = \"sometimes\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(bad)
	if err == nil || !strings.Contains(err.Error(), "invalid merge mode") {
		t.Errorf("LoadConfig error = %v, want invalid merge mode", err)
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Machine.Merge = datamux.MergeReadBack
	cfg.Machine.Settings[ti99.SettingCartridge] = 1
	cfg.Machine.FastRAM = datamux.DefaultWindows

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch after save/load (-want +got):\n%s", diff)
	}
}
