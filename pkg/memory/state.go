package memory

// State is the bus's serializable slice: work RAM, the interrupt
// latches and any pending DMA request.
type State struct {
	RAM        [2048]uint8
	IRQLatch   [irqSourceCount]bool
	DMAPage    uint8
	DMAPending bool
}

// State captures the bus for a snapshot.
func (m *Memory) State() State {
	return State{
		RAM:        m.RAM,
		IRQLatch:   m.IRQLatch,
		DMAPage:    m.dmaPage,
		DMAPending: m.dmaPending,
	}
}

// Restore loads a snapshot taken by State.
func (m *Memory) Restore(s State) {
	m.RAM = s.RAM
	m.IRQLatch = s.IRQLatch
	m.dmaPage = s.DMAPage
	m.dmaPending = s.DMAPending
}
