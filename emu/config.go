package emu

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"ti99/emu/log"
	"ti99/hw/ti99"
)

type Config struct {
	Machine ti99.Config `toml:"machine"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.FatalZ("failed to get user config directory").Error("err", err).End()
	}

	dir := filepath.Join(cfgdir, "ti99")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// DefaultConfig returns the configuration used when none is found.
func DefaultConfig() Config {
	return Config{Machine: ti99.DefaultConfig()}
}

// LoadConfig loads the configuration at path. Keys missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		log.ModEmu.WarnZ("unknown config keys").
			String("path", path).
			String("keys", fmt.Sprint(undec)).
			End()
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the config directory, or
// provides a default one.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("using default config").Error("err", err).End()
		}
		return DefaultConfig()
	}
	return cfg
}

// EncodeConfig returns the TOML representation of cfg.
func EncodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
