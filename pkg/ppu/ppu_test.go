package ppu

import "testing"

// testCart is a bare CHR/VRAM/palette space for PPU tests.
type testCart struct {
	chr     [0x2000]uint8
	vram    [0x1000]uint8
	palette [32]uint8

	reads []uint16
}

func paletteFold(addr uint16) int {
	i := int(addr & 0x1F)
	if i&0x13 == 0x10 {
		i &= 0x0F
	}
	return i
}

func (c *testCart) ReadCHR(addr uint16) uint8 {
	addr &= 0x3FFF
	c.reads = append(c.reads, addr)
	switch {
	case addr < 0x2000:
		return c.chr[addr]
	case addr < 0x3F00:
		return c.vram[addr&0x0FFF]
	default:
		return c.palette[paletteFold(addr)]
	}
}

func (c *testCart) WriteCHR(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		c.chr[addr] = value
	case addr < 0x3F00:
		c.vram[addr&0x0FFF] = value
	default:
		c.palette[paletteFold(addr)] = value & 0x3F
	}
}

func (c *testCart) PeekPalette(index uint8) uint8 {
	return c.palette[paletteFold(uint16(index))]
}

func createTestPPU() (*PPU, *testCart) {
	cart := &testCart{}
	return New(cart), cart
}

func TestFrameTiming(t *testing.T) {
	p, _ := createTestPPU()

	// Exactly 341*262 ticks per frame, no odd-frame skip.
	for frame := 0; frame < 3; frame++ {
		for i := 0; i < CyclesPerLine*LinesPerFrame; i++ {
			p.Tick()
		}
		if p.Frame != uint64(frame+1) {
			t.Fatalf("After %d full frames: Frame=%d", frame+1, p.Frame)
		}
		if p.Scanline != 0 || p.Cycle != 0 {
			t.Fatalf("Frame %d did not land on (0,0): (%d,%d)", frame+1, p.Scanline, p.Cycle)
		}
	}
}

// tickTo advances to the given scanline and dot.
func tickTo(p *PPU, scanline, cycle int) {
	for p.Scanline != scanline || p.Cycle != cycle {
		p.Tick()
	}
}

func TestVBlankAndNMITiming(t *testing.T) {
	p, _ := createTestPPU()
	p.WriteRegister(0x2000, CtrlNMIEnable)

	tickTo(p, 241, 1)
	if p.vblank {
		t.Error("vblank must not be set before dot 1 runs")
	}
	p.Tick()
	if !p.vblank {
		t.Error("vblank should be set after (241,1)")
	}
	if !p.NMIAsserted() {
		t.Error("NMI line should assert with vblank and NMI enable")
	}

	tickTo(p, PreRenderLine, 1)
	p.Tick()
	if p.vblank {
		t.Error("vblank should clear on the pre-render line")
	}
	if p.NMIAsserted() {
		t.Error("NMI line should drop with vblank")
	}
}

func TestNMIDisabledByControl(t *testing.T) {
	p, _ := createTestPPU()

	tickTo(p, 241, 2)
	if p.NMIAsserted() {
		t.Error("NMI must stay low with the enable bit clear")
	}

	// Enabling mid-vblank raises the line immediately.
	p.WriteRegister(0x2000, CtrlNMIEnable)
	if !p.NMIAsserted() {
		t.Error("Enabling NMI during vblank should assert the line")
	}
}

func TestStatusReadClearsVBlankAndToggle(t *testing.T) {
	p, _ := createTestPPU()

	tickTo(p, 241, 2)
	p.WriteRegister(0x2005, 0x10) // w=1

	v := p.ReadRegister(0x2002)
	if v&0x80 == 0 {
		t.Error("Expected vblank bit set")
	}
	if p.vblank {
		t.Error("Read must clear the vblank flag")
	}
	if p.w != 0 {
		t.Error("Read must reset the write toggle")
	}
	if p.ReadRegister(0x2002)&0x80 != 0 {
		t.Error("Second read must see vblank clear")
	}
}

func TestStaleBusBits(t *testing.T) {
	p, _ := createTestPPU()

	// Writing $AA anywhere charges the bus; a $2002 read returns
	// hardware bits on top of the stale low five.
	p.WriteRegister(0x2000, 0xAA)
	v := p.ReadRegister(0x2002)
	if v&0x1F != 0x0A {
		t.Errorf("Expected low five bits $0A, got $%02X", v&0x1F)
	}

	// Reads of write-only registers return the latch outright.
	p.WriteRegister(0x2003, 0x57)
	if got := p.ReadRegister(0x2000); got != 0x57 {
		t.Errorf("Expected stale $57, got $%02X", got)
	}
}

func TestScrollRegisterWrites(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2000, 0x03) // nametable bits into t
	if p.t&0x0C00 != 0x0C00 {
		t.Errorf("Expected nametable bits set in t, got $%04X", p.t)
	}

	p.WriteRegister(0x2005, 0x7D) // X: coarse $0F, fine 5
	if p.t&0x001F != 0x0F {
		t.Errorf("Expected coarse X $0F, got $%02X", p.t&0x001F)
	}
	if p.x != 5 {
		t.Errorf("Expected fine X 5, got %d", p.x)
	}

	p.WriteRegister(0x2005, 0x5E) // Y: coarse $0B, fine 6
	if (p.t>>5)&0x1F != 0x0B {
		t.Errorf("Expected coarse Y $0B, got $%02X", (p.t>>5)&0x1F)
	}
	if (p.t>>12)&0x07 != 6 {
		t.Errorf("Expected fine Y 6, got %d", (p.t>>12)&0x07)
	}
}

func TestAddressRegisterWrites(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2006, 0x21)
	if p.v != 0 {
		t.Error("v must not move until the second write")
	}
	p.WriteRegister(0x2006, 0x08)
	if p.v != 0x2108 {
		t.Errorf("Expected v=$2108, got $%04X", p.v)
	}
}

func TestDataReadBuffering(t *testing.T) {
	p, cart := createTestPPU()

	cart.vram[0x0000] = 0x11
	cart.vram[0x0001] = 0x22

	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)

	// The first read returns the stale buffer; the data arrives on
	// the next one.
	first := p.ReadRegister(0x2007)
	if first == 0x11 {
		t.Error("First read must return the old buffer")
	}
	if got := p.ReadRegister(0x2007); got != 0x11 {
		t.Errorf("Expected $11, got $%02X", got)
	}
	if got := p.ReadRegister(0x2007); got != 0x22 {
		t.Errorf("Expected $22, got $%02X", got)
	}
}

func TestPaletteReadBypassesBuffer(t *testing.T) {
	p, cart := createTestPPU()

	cart.palette[1] = 0x2A
	cart.vram[0x0F01] = 0x77 // nametable byte under $3F01

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x01)

	if got := p.ReadRegister(0x2007); got != 0x2A {
		t.Errorf("Palette read must be direct, got $%02X", got)
	}
	if p.readBuffer != 0x77 {
		t.Errorf("Buffer must hold the mirrored nametable byte, got $%02X", p.readBuffer)
	}
}

func TestDataAddressIncrement(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.ReadRegister(0x2007)
	if p.v != 0x2001 {
		t.Errorf("Expected v=$2001, got $%04X", p.v)
	}

	p.WriteRegister(0x2000, CtrlIncrement)
	p.ReadRegister(0x2007)
	if p.v != 0x2021 {
		t.Errorf("Expected v=$2021, got $%04X", p.v)
	}
}

func TestOAMAccess(t *testing.T) {
	p, _ := createTestPPU()

	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0xAB)
	if p.OAM[0x10] != 0xAB {
		t.Errorf("Expected OAM[$10]=$AB, got $%02X", p.OAM[0x10])
	}
	if p.OAMADDR != 0x11 {
		t.Errorf("OAMDATA write must advance OAMADDR, got $%02X", p.OAMADDR)
	}

	p.WriteRegister(0x2003, 0x10)
	if got := p.ReadRegister(0x2004); got != 0xAB {
		t.Errorf("Expected $AB, got $%02X", got)
	}
	if p.OAMADDR != 0x10 {
		t.Error("OAMDATA read must not advance OAMADDR")
	}
}

func TestIncrementYWrap(t *testing.T) {
	p, _ := createTestPPU()

	// Fine Y 7, coarse Y 29: the next increment wraps to coarse 0
	// and flips the vertical nametable.
	p.v = 7<<12 | 29<<5
	p.incrementY()
	if (p.v>>12)&7 != 0 {
		t.Errorf("Fine Y should wrap to 0, got %d", (p.v>>12)&7)
	}
	if (p.v>>5)&0x1F != 0 {
		t.Errorf("Coarse Y should wrap to 0, got %d", (p.v>>5)&0x1F)
	}
	if p.v&0x0800 == 0 {
		t.Error("Vertical nametable bit should flip")
	}

	// Coarse Y 31 wraps without the nametable flip.
	p.v = 7<<12 | 31<<5
	p.incrementY()
	if (p.v>>5)&0x1F != 0 || p.v&0x0800 != 0 {
		t.Errorf("Coarse 31 wrap must not flip the nametable, v=$%04X", p.v)
	}
}

func TestScrollCopyDots(t *testing.T) {
	p, _ := createTestPPU()
	p.WriteRegister(0x2001, MaskBGShow)

	p.t = 0x041F // horizontal bits all set
	tickTo(p, 0, 257)
	p.Tick()
	if p.v&0x041F != 0x041F {
		t.Errorf("Horizontal bits not copied at dot 257, v=$%04X", p.v)
	}

	p.t |= 0x7BE0
	tickTo(p, PreRenderLine, 290)
	p.Tick()
	if p.v&0x7BE0 != 0x7BE0 {
		t.Errorf("Vertical bits not copied in the pre-render window, v=$%04X", p.v)
	}
}

func TestRenderingDisabledSkipsScrollUpdates(t *testing.T) {
	p, _ := createTestPPU()

	p.t = 0x041F
	tickTo(p, 0, 258)
	if p.v != 0 {
		t.Errorf("v must not move with rendering disabled, got $%04X", p.v)
	}
}
