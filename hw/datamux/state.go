package datamux

import (
	"fmt"
	"slices"

	"ti99/hw/snapshot"
)

// State captures the datamux state.
func (m *Mux) State() *snapshot.Datamux {
	return &snapshot.Datamux{
		Version:  snapshot.Version,
		Latch:    m.latch,
		LowByte:  m.lowByte,
		HighByte: m.highByte,
		FastRAM:  m.useFast,
		RAM:      slices.Clone(m.fast.words),
	}
}

// SetState restores a state captured with State. The fast RAM layout must
// match the one this datamux was built with.
func (m *Mux) SetState(state *snapshot.Datamux) error {
	if len(state.RAM) != len(m.fast.words) {
		return fmt.Errorf("datamux: snapshot has %d fast ram words, want %d", len(state.RAM), len(m.fast.words))
	}
	m.latch = state.Latch
	m.lowByte = state.LowByte
	m.highByte = state.HighByte
	m.useFast = state.FastRAM
	copy(m.fast.words, state.RAM)
	return nil
}
