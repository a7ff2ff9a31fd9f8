package cpu

// AddressingMode enumerates the 6502 addressing modes
type AddressingMode int

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect // (zp,X)
	AddrIndirectIndexed // (zp),Y
	AddrUnknown
)

// access distinguishes how the resolved address will be used. Indexed
// write and read-modify-write accesses always pay the partial-address
// dummy read; read accesses pay it only on a page crossing.
type access int

const (
	accRead access = iota
	accWrite
	accRMW
)

// operand resolves the effective address for an addressing mode while
// performing the mode's real bus activity, dummy reads included.
// Immediate returns the PC location itself; the caller's data read
// supplies the operand cycle.
func (c *CPU) operand(mode AddressingMode, acc access) uint16 {
	switch mode {
	case AddrImmediate:
		addr := c.PC
		c.PC++
		return addr

	case AddrZeroPage:
		return uint16(c.fetch())

	case AddrZeroPageX:
		base := c.fetch()
		c.read(uint16(base))
		return uint16(base + c.X)

	case AddrZeroPageY:
		base := c.fetch()
		c.read(uint16(base))
		return uint16(base + c.Y)

	case AddrAbsolute:
		return c.fetch16()

	case AddrAbsoluteX:
		return c.indexed(c.fetch16(), c.X, acc)

	case AddrAbsoluteY:
		return c.indexed(c.fetch16(), c.Y, acc)

	case AddrIndexedIndirect:
		base := c.fetch()
		c.read(uint16(base))
		p := base + c.X
		lo := uint16(c.read(uint16(p)))
		hi := uint16(c.read(uint16(uint8(p + 1))))
		return hi<<8 | lo

	case AddrIndirectIndexed:
		base := c.fetch()
		lo := uint16(c.read(uint16(base)))
		hi := uint16(c.read(uint16(uint8(base + 1))))
		return c.indexed(hi<<8|lo, c.Y, acc)
	}

	// Implied, accumulator, relative and indirect never resolve here.
	return 0
}

// indexed applies an index register with the page-cross dummy read
// discipline.
func (c *CPU) indexed(base uint16, index uint8, acc access) uint16 {
	addr := base + uint16(index)
	crossed := base&0xFF00 != addr&0xFF00
	if acc != accRead || crossed {
		c.read(base&0xFF00 | addr&0x00FF)
	}
	return addr
}
