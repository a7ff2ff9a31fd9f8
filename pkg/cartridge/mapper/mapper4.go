package mapper

import "github.com/famicore/pkg/logger"

const (
	ppuCyclesPerLine = 341
	ppuLinesPerFrame = 262
	preRenderLine    = 261
	irqClockDot      = 260
)

// Mapper4 (MMC3) pairs a bank-select register with a bank-data
// register and carries the scanline-counting IRQ generator. The
// counter is clocked once per PPU line, at dot 260, if an A12 rising
// edge was seen on the CHR bus since the previous clock.
type Mapper4 struct {
	banks Banks

	cmd     uint8
	prgSwap bool
	chrSwap bool
	prgBank [2]uint8
	chrBank [6]uint8

	mirroring Mirroring

	irqLatch  uint8
	irqCount  uint8
	irqReload bool
	irqEnable bool
	irq       bool

	ppuCycle int
	ppuLine  int
	busAddr  uint16
	a12Edge  bool
}

// NewMapper4 creates an MMC3 mapper
func NewMapper4(b Banks) *Mapper4 {
	m := &Mapper4{
		banks:     b,
		prgBank:   [2]uint8{0, 1},
		mirroring: b.Mirroring(),
	}
	m.update()
	return m
}

// update rewrites every slot from the current register file.
func (m *Mapper4) update() {
	chrSwap := 0
	if m.chrSwap {
		chrSwap = 4
	}
	for i := 0; i < 2; i++ {
		bank := int(m.chrBank[i])
		m.banks.MapCHR((i*2)^chrSwap, bank&^1)
		m.banks.MapCHR((i*2+1)^chrSwap, bank|1)
	}
	for i := 2; i < 6; i++ {
		m.banks.MapCHR((i+2)^chrSwap, int(m.chrBank[i]))
	}

	pages := m.banks.PRGPages()
	if !m.prgSwap {
		m.banks.MapPRG(0, int(m.prgBank[0]))
		m.banks.MapPRG(1, int(m.prgBank[1]))
		m.banks.MapPRG(2, pages-2)
	} else {
		m.banks.MapPRG(0, pages-2)
		m.banks.MapPRG(1, int(m.prgBank[1]))
		m.banks.MapPRG(2, int(m.prgBank[0]))
	}
	m.banks.MapPRG(3, pages-1)

	m.banks.SetMirroring(m.mirroring)
}

func (m *Mapper4) OnPRGWrite(addr uint16, value uint8) {
	if addr < 0x8000 {
		return
	}

	switch addr & 0xE001 {
	case 0x8000: // Bank select
		m.cmd = value & 0x07
		m.prgSwap = value&0x40 != 0
		m.chrSwap = value&0x80 != 0
		m.update()

	case 0x8001: // Bank data
		if m.cmd < 6 {
			m.chrBank[m.cmd] = value
		} else {
			m.prgBank[m.cmd-6] = value
		}
		m.update()

	case 0xA000: // Mirroring
		if m.banks.Mirroring() != MirrorFourScreen {
			if value&1 == 0 {
				m.mirroring = MirrorVertical
			} else {
				m.mirroring = MirrorHorizontal
			}
			m.update()
		}

	case 0xA001:
		logger.LogMapper("MMC3 PRG RAM protect: $%02X", value)

	case 0xC000: // IRQ latch
		m.irqLatch = value

	case 0xC001: // IRQ reload request
		m.irqCount = 0
		m.irqReload = true

	case 0xE000: // IRQ disable; also acknowledges a pending IRQ
		m.irqEnable = false
		m.irq = false

	case 0xE001: // IRQ enable
		m.irqEnable = true
	}
}

// OnPPUAddrChange watches the PPU bus for rising edges of A12.
func (m *Mapper4) OnPPUAddrChange(addr uint16) {
	if addr >= 0x2000 {
		return
	}
	if m.busAddr&0x1000 == 0 && addr&0x1000 != 0 {
		m.a12Edge = true
	}
	m.busAddr = addr
}

// Tick runs once per PPU cycle and clocks the line counter at dot 260
// of visible and pre-render lines.
func (m *Mapper4) Tick() {
	if (m.ppuLine < 240 || m.ppuLine == preRenderLine) && m.ppuCycle == irqClockDot {
		if m.a12Edge {
			m.clockCounter()
		}
		m.a12Edge = false
	}

	m.ppuCycle++
	if m.ppuCycle == ppuCyclesPerLine {
		m.ppuCycle = 0
		m.ppuLine++
		if m.ppuLine == ppuLinesPerFrame {
			m.ppuLine = 0
		}
	}
}

func (m *Mapper4) clockCounter() {
	prev := m.irqCount
	if m.irqCount == 0 || m.irqReload {
		m.irqCount = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCount--
	}
	// irqReload is read after the reload branch cleared it: a reload
	// with latch 0 does not fire on its own clock.
	if (prev > 0 || m.irqReload) && m.irqCount == 0 && m.irqEnable {
		logger.LogMapper("MMC3 IRQ asserted (latch=%d)", m.irqLatch)
		m.irq = true
	}
}

func (m *Mapper4) IRQPending() bool { return m.irq }

func (m *Mapper4) State() State {
	return State{
		Cmd:       m.cmd,
		PRGSwap:   m.prgSwap,
		CHRSwap:   m.chrSwap,
		PRGBank:   m.prgBank,
		CHRBank:   m.chrBank,
		IRQLatch:  m.irqLatch,
		IRQCount:  m.irqCount,
		IRQReload: m.irqReload,
		IRQEnable: m.irqEnable,
		IRQ:       m.irq,
		PPUCycle:  m.ppuCycle,
		PPULine:   m.ppuLine,
		A12Edge:   m.a12Edge,
		BusAddr:   m.busAddr,
		Bank:      uint8(m.mirroring),
	}
}

func (m *Mapper4) Restore(s State) {
	m.cmd = s.Cmd
	m.prgSwap = s.PRGSwap
	m.chrSwap = s.CHRSwap
	m.prgBank = s.PRGBank
	m.chrBank = s.CHRBank
	m.irqLatch = s.IRQLatch
	m.irqCount = s.IRQCount
	m.irqReload = s.IRQReload
	m.irqEnable = s.IRQEnable
	m.irq = s.IRQ
	m.ppuCycle = s.PPUCycle
	m.ppuLine = s.PPULine
	m.a12Edge = s.A12Edge
	m.busAddr = s.BusAddr
	m.mirroring = Mirroring(s.Bank)
	m.update()
}
