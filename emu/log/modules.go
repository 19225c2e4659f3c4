package log

import "gopkg.in/Sirupsen/logrus.v0"

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

const (
	ModEmu Module = iota + 1
	ModMux
	ModHwIo
	ModCRU
	ModGROM
	ModVDP
	ModSound
	ModSpeech
	ModCart
	ModPEB
)

var modDebugMask ModuleMask = 0

var modNames = []string{
	"<error>", "emu", "mux", "hwio", "cru", "grom", "vdp", "sound", "speech", "cart", "peb",
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if idx != 0 && s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return append([]string(nil), modNames[1:]...)
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return "<unknown>"
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("_mod", mod.String())
}

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	if mod.Enabled(DebugLevel) {
		mod.logger().Debugf(format, args...)
	}
}

func (mod Module) Infof(format string, args ...any) {
	if mod.Enabled(InfoLevel) {
		mod.logger().Infof(format, args...)
	}
}

func (mod Module) Warnf(format string, args ...any) {
	if mod.Enabled(WarnLevel) {
		mod.logger().Warnf(format, args...)
	}
}

func (mod Module) Errorf(format string, args ...any) {
	if mod.Enabled(ErrorLevel) {
		mod.logger().Errorf(format, args...)
	}
}

// Fatalf logs and exits, even when logging is disabled.
func (mod Module) Fatalf(format string, args ...any) {
	mod.logger().Fatalf(format, args...)
}

// Fast structured functions. They return nil when the level is disabled for
// this module, and every EntryZ method is a no-op on a nil receiver.

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		return &EntryZ{lvl: lvl, mod: mod, msg: msg}
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }

// FatalZ returns an entry that exits the program on End, even when logging
// is disabled.
func (mod Module) FatalZ(msg string) *EntryZ {
	return &EntryZ{lvl: FatalLevel, mod: mod, msg: msg}
}
