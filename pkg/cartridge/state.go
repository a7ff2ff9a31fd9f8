package cartridge

import "github.com/famicore/pkg/cartridge/mapper"

// State is the cartridge's mutable memory and bank tables. The ROM
// image itself is not serialized; the caller re-attaches it on load.
type State struct {
	PRGRAM       []uint8
	CHRRAM       []uint8
	NametableRAM [4 * 1024]uint8
	PaletteRAM   [32]uint8

	PRGSlot [4]int
	CHRSlot [8]int
	NTSlot  [4]int

	Mirroring Mirroring
	Mapper    mapper.State
}

// State captures the cartridge for a snapshot.
func (c *Cartridge) State() State {
	return State{
		PRGRAM:       append([]uint8(nil), c.PRGRAM...),
		CHRRAM:       append([]uint8(nil), c.CHRRAM...),
		NametableRAM: c.NametableRAM,
		PaletteRAM:   c.PaletteRAM,
		PRGSlot:      c.prgSlot,
		CHRSlot:      c.chrSlot,
		NTSlot:       c.ntSlot,
		Mirroring:    c.mirroring,
		Mapper:       c.Mapper.State(),
	}
}

// Restore loads a snapshot taken by State. Slot tables are restored
// after the mapper so its bank recomputation cannot drift from the
// saved layout.
func (c *Cartridge) Restore(s State) {
	copy(c.PRGRAM, s.PRGRAM)
	copy(c.CHRRAM, s.CHRRAM)
	c.NametableRAM = s.NametableRAM
	c.PaletteRAM = s.PaletteRAM
	c.Mapper.Restore(s.Mapper)
	c.prgSlot = s.PRGSlot
	c.chrSlot = s.CHRSlot
	c.ntSlot = s.NTSlot
	c.mirroring = s.Mirroring
	c.SetMirroring(s.Mirroring)
}
