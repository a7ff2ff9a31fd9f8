package ppu

// State is every mutable PPU field except the frame buffer, which is
// rebuilt by rendering.
type State struct {
	PPUCTRL uint8
	PPUMASK uint8
	OAMADDR uint8
	OAM     [256]uint8

	V uint16
	T uint16
	X uint8
	W uint8

	VBlank         bool
	Sprite0Hit     bool
	SpriteOverflow bool

	ReadBuffer uint8
	IOLatch    uint8

	Cycle    int
	Scanline int
	Frame    uint64

	NMIOut bool
}

// State captures the PPU for a snapshot.
func (p *PPU) State() State {
	return State{
		PPUCTRL: p.PPUCTRL, PPUMASK: p.PPUMASK, OAMADDR: p.OAMADDR,
		OAM: p.OAM,
		V:   p.v, T: p.t, X: p.x, W: p.w,
		VBlank: p.vblank, Sprite0Hit: p.sprite0Hit, SpriteOverflow: p.spriteOverflow,
		ReadBuffer: p.readBuffer, IOLatch: p.ioLatch,
		Cycle: p.Cycle, Scanline: p.Scanline, Frame: p.Frame,
		NMIOut: p.nmiOut,
	}
}

// Restore loads a snapshot taken by State.
func (p *PPU) Restore(s State) {
	p.PPUCTRL, p.PPUMASK, p.OAMADDR = s.PPUCTRL, s.PPUMASK, s.OAMADDR
	p.OAM = s.OAM
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.vblank, p.sprite0Hit, p.spriteOverflow = s.VBlank, s.Sprite0Hit, s.SpriteOverflow
	p.readBuffer, p.ioLatch = s.ReadBuffer, s.IOLatch
	p.Cycle, p.Scanline, p.Frame = s.Cycle, s.Scanline, s.Frame
	p.nmiOut = s.NMIOut
}
