package cpu

// State is the CPU's serializable register file.
type State struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
	Cycles      uint64
	NMIPrev     bool
}

// State captures the CPU for a snapshot.
func (c *CPU) State() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP,
		PC:      c.PC,
		P:       c.P,
		Cycles:  c.Cycles,
		NMIPrev: c.nmiPrev,
	}
}

// Restore loads a snapshot taken by State.
func (c *CPU) Restore(s State) {
	c.A, c.X, c.Y, c.SP = s.A, s.X, s.Y, s.SP
	c.PC = s.PC
	c.P = s.P
	c.Cycles = s.Cycles
	c.nmiPrev = s.NMIPrev
}
