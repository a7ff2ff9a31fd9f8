package cpu

import (
	"github.com/famicore/pkg/logger"
)

// Interrupt vectors
const (
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE

	stackBase = 0x0100
)

// Status flag bits
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // -
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// Bus is everything the CPU can see. Read and Write perform one bus
// cycle each: the implementation advances the PPU, mapper and APU
// behind every access. NMI and IRQ expose the current line levels;
// TakeDMA hands over a pending OAM-DMA page exactly once.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// Peek reads without bus side effects; the tracer uses it.
	Peek(addr uint16) uint8
	NMI() bool
	IRQ() bool
	TakeDMA() (page uint8, pending bool)
}

// CPU is the 6502 core
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter
	P  uint8  // Status register

	// Cycles counts every bus access ever made, including dummy
	// reads, stack pushes and interrupt vector fetches.
	Cycles uint64

	bus Bus

	// Previous NMI line sample for edge detection. The line is
	// active-low on hardware; here true means asserted, and the
	// CPU reacts to the false->true transition.
	nmiPrev bool
}

// New creates a CPU attached to the given bus
func New(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		SP:  0xFD,
		P:   FlagUnused | FlagInterrupt,
	}
}

// Reset runs the power-on sequence: three suppressed stack pushes,
// then the reset vector fetch with I set.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0
	c.P = FlagUnused | FlagInterrupt
	c.Cycles = 0
	c.nmiPrev = false

	c.read(c.PC)
	c.read(c.PC)
	for i := 0; i < 3; i++ {
		c.read(stackBase | uint16(c.SP))
		c.SP--
	}
	c.PC = c.read16(resetVector)
}

// Step services a pending DMA or interrupt, or executes one
// instruction. It returns the number of bus cycles consumed.
func (c *CPU) Step() int {
	start := c.Cycles

	if page, pending := c.bus.TakeDMA(); pending {
		c.oamDMA(page)
	}

	// Interrupt poll. The NMI edge and the (IRQ level, I flag) pair
	// are sampled here, before this instruction can change them.
	nmi := c.bus.NMI()
	edge := nmi && !c.nmiPrev
	c.nmiPrev = nmi

	if edge {
		logger.LogCPU("NMI taken at PC=$%04X", c.PC)
		c.interrupt(nmiVector)
		return int(c.Cycles - start)
	}
	if c.bus.IRQ() && !c.getFlag(FlagInterrupt) {
		logger.LogCPU("IRQ taken at PC=$%04X", c.PC)
		c.interrupt(irqVector)
		return int(c.Cycles - start)
	}

	if logger.TraceEnabled() {
		logger.LogTrace(c.traceLine())
	}

	opcode := c.read(c.PC)
	c.PC++
	c.execute(opcode)

	return int(c.Cycles - start)
}

// interrupt runs the 7-cycle NMI/IRQ sequence. B is pushed clear;
// only BRK pushes it set.
func (c *CPU) interrupt(vector uint16) {
	c.read(c.PC)
	c.read(c.PC)
	c.push16(c.PC)
	c.push(c.P&^FlagBreak | FlagUnused)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
}

// oamDMA copies a 256-byte page into PPU OAM through the bus: one
// alignment cycle, then 256 read/write pairs, 513 cycles total. The
// devices keep ticking under every one of them.
func (c *CPU) oamDMA(page uint8) {
	c.read(c.PC)
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		v := c.read(base + uint16(i))
		c.write(0x2004, v)
	}
}

// read performs one bus read cycle
func (c *CPU) read(addr uint16) uint8 {
	c.Cycles++
	return c.bus.Read(addr)
}

// write performs one bus write cycle
func (c *CPU) write(addr uint16, value uint8) {
	c.Cycles++
	c.bus.Write(addr, value)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// fetch reads the byte at PC and advances it
func (c *CPU) fetch() uint8 {
	v := c.read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.write(stackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase | uint16(c.SP))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// setNZ updates the negative and zero flags from a result
func (c *CPU) setNZ(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}
