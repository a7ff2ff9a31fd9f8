package memory

import (
	"github.com/famicore/pkg/logger"
)

// IRQ source slots in the aggregation latch.
const (
	IRQSourceAPUFrame = iota
	IRQSourceAPUDMC
	IRQSourceMapper
	irqSourceCount
)

// PPU is the register window and tick surface the bus needs.
type PPU interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
	Tick()
	NMIAsserted() bool
}

// APU covers the $4000-$4017 registers, the per-CPU-cycle tick and
// the two APU interrupt sources.
type APU interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
	Tick()
	FrameIRQ() bool
	DMCIRQ() bool
}

// Cartridge is the PRG window plus the mapper's tick and IRQ line.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	TickMapper()
	IRQPending() bool
}

// Memory is the CPU bus and the clock coordinator in one: every
// access routes the address, then advances the PPU three times, the
// mapper three times and the APU once, and refreshes the interrupt
// latches.
type Memory struct {
	RAM [2048]uint8

	ppu  PPU
	apu  APU
	cart Cartridge

	// IRQLatch aggregates the three level-triggered sources; the
	// CPU observes their disjunction.
	IRQLatch [irqSourceCount]bool

	// Pending OAM-DMA page, latched by a $4014 write and drained
	// by the CPU at the next instruction boundary.
	dmaPage    uint8
	dmaPending bool
}

// New wires up the bus
func New(ppu PPU, apu APU, cart Cartridge) *Memory {
	return &Memory{ppu: ppu, apu: apu, cart: cart}
}

// Read performs one CPU bus read cycle.
func (m *Memory) Read(addr uint16) uint8 {
	v := m.route(addr)
	m.tick()
	return v
}

func (m *Memory) route(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.RAM[addr&0x07FF]
	case addr < 0x4000:
		return m.ppu.ReadRegister(0x2000 | addr&0x0007)
	case addr == 0x4014:
		return 0
	case addr < 0x4018:
		return m.apu.ReadRegister(addr)
	case addr < 0x4020:
		logger.LogWarn("read from test-mode register $%04X", addr)
		return 0
	case addr < 0x6000:
		logger.LogWarn("read from unmapped space $%04X", addr)
		return 0
	default:
		return m.cart.ReadPRG(addr)
	}
}

// Write performs one CPU bus write cycle.
func (m *Memory) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		m.ppu.WriteRegister(0x2000|addr&0x0007, value)
	case addr == 0x4014:
		m.dmaPage = value
		m.dmaPending = true
	case addr < 0x4018:
		m.apu.WriteRegister(addr, value)
	case addr < 0x6000:
		logger.LogWarn("write to unmapped space $%04X = $%02X", addr, value)
	default:
		m.cart.WritePRG(addr, value)
	}
	m.tick()
}

// Peek reads without advancing the clock or triggering register side
// effects. Device registers read as zero.
func (m *Memory) Peek(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.RAM[addr&0x07FF]
	case addr >= 0x6000:
		return m.cart.ReadPRG(addr)
	default:
		return 0
	}
}

// tick advances the slower devices under one CPU cycle: three PPU
// dots, three mapper ticks, one APU cycle.
func (m *Memory) tick() {
	for i := 0; i < 3; i++ {
		m.ppu.Tick()
	}
	for i := 0; i < 3; i++ {
		m.cart.TickMapper()
	}
	m.apu.Tick()

	m.IRQLatch[IRQSourceAPUFrame] = m.apu.FrameIRQ()
	m.IRQLatch[IRQSourceAPUDMC] = m.apu.DMCIRQ()
	m.IRQLatch[IRQSourceMapper] = m.cart.IRQPending()
}

// NMI reports the PPU's NMI line level.
func (m *Memory) NMI() bool {
	return m.ppu.NMIAsserted()
}

// IRQ reports the disjunction of the three IRQ sources.
func (m *Memory) IRQ() bool {
	return m.IRQLatch[IRQSourceAPUFrame] || m.IRQLatch[IRQSourceAPUDMC] || m.IRQLatch[IRQSourceMapper]
}

// TakeDMA hands a pending OAM-DMA page to the CPU exactly once.
func (m *Memory) TakeDMA() (uint8, bool) {
	if !m.dmaPending {
		return 0, false
	}
	m.dmaPending = false
	return m.dmaPage, true
}
