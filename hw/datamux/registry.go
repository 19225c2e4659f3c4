package datamux

import (
	"errors"
	"fmt"

	"ti99/emu/log"
	"ti99/hw/hwio"
)

// DefaultMaxSlots bounds the number of devices attached to the datamux.
const DefaultMaxSlots = 16

var (
	ErrRegistryFull  = errors.New("datamux: device registry full")
	ErrUnknownDevice = errors.New("datamux: unknown device")
)

// Settings holds the named runtime configuration values that candidate
// presence conditions are evaluated against. A missing setting reads as 0.
type Settings map[string]uint32

func (s Settings) Get(name string) uint32 { return s[name] }

// Condition decides whether a candidate is present in the current
// configuration: all bits of Set must be set and all bits of Unset must be
// clear in the named setting. A condition without a setting always holds.
type Condition struct {
	Setting string
	Set     uint32
	Unset   uint32
}

func (c Condition) Met(s Settings) bool {
	if c.Setting == "" {
		return true
	}
	v := s.Get(c.Setting)
	return v&c.Set == c.Set && v&c.Unset == 0
}

// Candidate describes a device that may be attached to the datamux.
//
// A read at address a is routed to the device when a&Mask == Select. A write
// is routed when a&Mask == Select|WriteSelect, WriteSelect holding the extra
// address lines that qualify writes (e.g. >9C00 for GROM writes vs >9800 for
// reads).
type Candidate struct {
	Name        string
	Mask        uint16
	Select      uint16
	WriteSelect uint16
	Flags       hwio.RWFlags // restricts the device to reads or writes
	Cond        Condition
}

// Devices resolves a device name into the instance present in the machine.
type Devices interface {
	Device(name string) (hwio.BankIO8, bool)
}

// DeviceMap is a Devices backed by a map.
type DeviceMap map[string]hwio.BankIO8

func (dm DeviceMap) Device(name string) (hwio.BankIO8, bool) {
	dev, ok := dm[name]
	return dev, ok && dev != nil
}

// Slot is a mounted device. Read or Write is nil when the device doesn't
// respond to that kind of access.
type Slot struct {
	Name        string
	Mask        uint16
	Select      uint16
	WriteSelect uint16

	Read  func(addr uint16, peek bool) uint8
	Write func(addr uint16, val uint8)
}

func (s *Slot) MatchRead(addr uint16) bool {
	return s.Read != nil && addr&s.Mask == s.Select
}

func (s *Slot) MatchWrite(addr uint16) bool {
	return s.Write != nil && addr&s.Mask == s.Select|s.WriteSelect
}

// Registry holds the devices attached to the datamux. It's only modified by
// Mount, and read-only afterwards.
type Registry struct {
	max    int
	strict bool
	slots  []Slot
}

// NewRegistry creates an empty registry holding at most max devices
// (DefaultMaxSlots if max <= 0). In strict mode, a candidate naming a device
// absent from the machine is a mount error rather than a warning.
func NewRegistry(max int, strict bool) *Registry {
	if max <= 0 {
		max = DefaultMaxSlots
	}
	return &Registry{
		max:    max,
		strict: strict,
		slots:  make([]Slot, 0, max),
	}
}

// Mount rebuilds the registry from scratch: candidates are walked in order
// and the ones whose device exists and whose condition holds are attached.
// On error, the registry is left empty.
func (r *Registry) Mount(cands []Candidate, settings Settings, devs Devices) error {
	r.slots = r.slots[:0]

	slots := make([]Slot, 0, r.max)
	for _, c := range cands {
		dev, ok := devs.Device(c.Name)
		if !ok {
			if r.strict {
				return fmt.Errorf("%w: %s", ErrUnknownDevice, c.Name)
			}
			log.ModMux.WarnZ("device not found, skipping").
				String("name", c.Name).
				End()
			continue
		}

		if !c.Cond.Met(settings) {
			log.ModMux.DebugZ("device not present").
				String("name", c.Name).
				String("setting", c.Cond.Setting).
				Hex32("value", settings.Get(c.Cond.Setting)).
				End()
			continue
		}

		if len(slots) == r.max {
			return fmt.Errorf("%w: cannot attach %s, %d slots in use", ErrRegistryFull, c.Name, r.max)
		}

		slot := Slot{
			Name:        c.Name,
			Mask:        c.Mask,
			Select:      c.Select,
			WriteSelect: c.WriteSelect,
		}
		if c.Flags.CanRead() {
			slot.Read = dev.Read8
		}
		if c.Flags.CanWrite() {
			slot.Write = dev.Write8
		}
		slots = append(slots, slot)

		log.ModMux.DebugZ("device mounted").
			String("name", c.Name).
			Hex16("mask", c.Mask).
			Hex16("select", c.Select).
			Hex16("wselect", c.WriteSelect).
			Int("slot", len(slots)-1).
			End()
	}

	r.slots = append(r.slots, slots...)
	log.ModMux.InfoZ("registry mounted").
		Int("devices", len(r.slots)).
		Int("candidates", len(cands)).
		End()
	return nil
}

// Len returns the number of mounted devices.
func (r *Registry) Len() int { return len(r.slots) }

// Slots returns a copy of the mounted devices, in dispatch order.
func (r *Registry) Slots() []Slot {
	return append([]Slot(nil), r.slots...)
}

// Decode appends to dst the indices of the slots answering an access at addr,
// and returns the extended slice.
func (r *Registry) Decode(dst []int, addr uint16, write bool) []int {
	for i := range r.slots {
		s := &r.slots[i]
		if (write && s.MatchWrite(addr)) || (!write && s.MatchRead(addr)) {
			dst = append(dst, i)
		}
	}
	return dst
}
