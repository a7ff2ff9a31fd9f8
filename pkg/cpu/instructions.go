package cpu

import "github.com/famicore/pkg/logger"

// execute dispatches one fetched opcode. Every case performs the
// opcode's full bus activity through the addressing helpers.
func (c *CPU) execute(opcode uint8) {
	switch opcode {
	// LDA
	case 0xA9:
		c.lda(AddrImmediate)
	case 0xA5:
		c.lda(AddrZeroPage)
	case 0xB5:
		c.lda(AddrZeroPageX)
	case 0xAD:
		c.lda(AddrAbsolute)
	case 0xBD:
		c.lda(AddrAbsoluteX)
	case 0xB9:
		c.lda(AddrAbsoluteY)
	case 0xA1:
		c.lda(AddrIndexedIndirect)
	case 0xB1:
		c.lda(AddrIndirectIndexed)

	// LDX
	case 0xA2:
		c.ldx(AddrImmediate)
	case 0xA6:
		c.ldx(AddrZeroPage)
	case 0xB6:
		c.ldx(AddrZeroPageY)
	case 0xAE:
		c.ldx(AddrAbsolute)
	case 0xBE:
		c.ldx(AddrAbsoluteY)

	// LDY
	case 0xA0:
		c.ldy(AddrImmediate)
	case 0xA4:
		c.ldy(AddrZeroPage)
	case 0xB4:
		c.ldy(AddrZeroPageX)
	case 0xAC:
		c.ldy(AddrAbsolute)
	case 0xBC:
		c.ldy(AddrAbsoluteX)

	// STA
	case 0x85:
		c.store(AddrZeroPage, c.A)
	case 0x95:
		c.store(AddrZeroPageX, c.A)
	case 0x8D:
		c.store(AddrAbsolute, c.A)
	case 0x9D:
		c.store(AddrAbsoluteX, c.A)
	case 0x99:
		c.store(AddrAbsoluteY, c.A)
	case 0x81:
		c.store(AddrIndexedIndirect, c.A)
	case 0x91:
		c.store(AddrIndirectIndexed, c.A)

	// STX
	case 0x86:
		c.store(AddrZeroPage, c.X)
	case 0x96:
		c.store(AddrZeroPageY, c.X)
	case 0x8E:
		c.store(AddrAbsolute, c.X)

	// STY
	case 0x84:
		c.store(AddrZeroPage, c.Y)
	case 0x94:
		c.store(AddrZeroPageX, c.Y)
	case 0x8C:
		c.store(AddrAbsolute, c.Y)

	// ADC
	case 0x69:
		c.adc(AddrImmediate)
	case 0x65:
		c.adc(AddrZeroPage)
	case 0x75:
		c.adc(AddrZeroPageX)
	case 0x6D:
		c.adc(AddrAbsolute)
	case 0x7D:
		c.adc(AddrAbsoluteX)
	case 0x79:
		c.adc(AddrAbsoluteY)
	case 0x61:
		c.adc(AddrIndexedIndirect)
	case 0x71:
		c.adc(AddrIndirectIndexed)

	// SBC
	case 0xE9, 0xEB:
		c.sbc(AddrImmediate)
	case 0xE5:
		c.sbc(AddrZeroPage)
	case 0xF5:
		c.sbc(AddrZeroPageX)
	case 0xED:
		c.sbc(AddrAbsolute)
	case 0xFD:
		c.sbc(AddrAbsoluteX)
	case 0xF9:
		c.sbc(AddrAbsoluteY)
	case 0xE1:
		c.sbc(AddrIndexedIndirect)
	case 0xF1:
		c.sbc(AddrIndirectIndexed)

	// CMP / CPX / CPY
	case 0xC9:
		c.compare(AddrImmediate, c.A)
	case 0xC5:
		c.compare(AddrZeroPage, c.A)
	case 0xD5:
		c.compare(AddrZeroPageX, c.A)
	case 0xCD:
		c.compare(AddrAbsolute, c.A)
	case 0xDD:
		c.compare(AddrAbsoluteX, c.A)
	case 0xD9:
		c.compare(AddrAbsoluteY, c.A)
	case 0xC1:
		c.compare(AddrIndexedIndirect, c.A)
	case 0xD1:
		c.compare(AddrIndirectIndexed, c.A)
	case 0xE0:
		c.compare(AddrImmediate, c.X)
	case 0xE4:
		c.compare(AddrZeroPage, c.X)
	case 0xEC:
		c.compare(AddrAbsolute, c.X)
	case 0xC0:
		c.compare(AddrImmediate, c.Y)
	case 0xC4:
		c.compare(AddrZeroPage, c.Y)
	case 0xCC:
		c.compare(AddrAbsolute, c.Y)

	// AND
	case 0x29:
		c.and(AddrImmediate)
	case 0x25:
		c.and(AddrZeroPage)
	case 0x35:
		c.and(AddrZeroPageX)
	case 0x2D:
		c.and(AddrAbsolute)
	case 0x3D:
		c.and(AddrAbsoluteX)
	case 0x39:
		c.and(AddrAbsoluteY)
	case 0x21:
		c.and(AddrIndexedIndirect)
	case 0x31:
		c.and(AddrIndirectIndexed)

	// ORA
	case 0x09:
		c.ora(AddrImmediate)
	case 0x05:
		c.ora(AddrZeroPage)
	case 0x15:
		c.ora(AddrZeroPageX)
	case 0x0D:
		c.ora(AddrAbsolute)
	case 0x1D:
		c.ora(AddrAbsoluteX)
	case 0x19:
		c.ora(AddrAbsoluteY)
	case 0x01:
		c.ora(AddrIndexedIndirect)
	case 0x11:
		c.ora(AddrIndirectIndexed)

	// EOR
	case 0x49:
		c.eor(AddrImmediate)
	case 0x45:
		c.eor(AddrZeroPage)
	case 0x55:
		c.eor(AddrZeroPageX)
	case 0x4D:
		c.eor(AddrAbsolute)
	case 0x5D:
		c.eor(AddrAbsoluteX)
	case 0x59:
		c.eor(AddrAbsoluteY)
	case 0x41:
		c.eor(AddrIndexedIndirect)
	case 0x51:
		c.eor(AddrIndirectIndexed)

	// BIT
	case 0x24:
		c.bit(AddrZeroPage)
	case 0x2C:
		c.bit(AddrAbsolute)

	// Shifts and rotates
	case 0x0A:
		c.rmw(AddrAccumulator, c.aslValue)
	case 0x06:
		c.rmw(AddrZeroPage, c.aslValue)
	case 0x16:
		c.rmw(AddrZeroPageX, c.aslValue)
	case 0x0E:
		c.rmw(AddrAbsolute, c.aslValue)
	case 0x1E:
		c.rmw(AddrAbsoluteX, c.aslValue)

	case 0x4A:
		c.rmw(AddrAccumulator, c.lsrValue)
	case 0x46:
		c.rmw(AddrZeroPage, c.lsrValue)
	case 0x56:
		c.rmw(AddrZeroPageX, c.lsrValue)
	case 0x4E:
		c.rmw(AddrAbsolute, c.lsrValue)
	case 0x5E:
		c.rmw(AddrAbsoluteX, c.lsrValue)

	case 0x2A:
		c.rmw(AddrAccumulator, c.rolValue)
	case 0x26:
		c.rmw(AddrZeroPage, c.rolValue)
	case 0x36:
		c.rmw(AddrZeroPageX, c.rolValue)
	case 0x2E:
		c.rmw(AddrAbsolute, c.rolValue)
	case 0x3E:
		c.rmw(AddrAbsoluteX, c.rolValue)

	case 0x6A:
		c.rmw(AddrAccumulator, c.rorValue)
	case 0x66:
		c.rmw(AddrZeroPage, c.rorValue)
	case 0x76:
		c.rmw(AddrZeroPageX, c.rorValue)
	case 0x6E:
		c.rmw(AddrAbsolute, c.rorValue)
	case 0x7E:
		c.rmw(AddrAbsoluteX, c.rorValue)

	// INC / DEC
	case 0xE6:
		c.rmw(AddrZeroPage, c.incValue)
	case 0xF6:
		c.rmw(AddrZeroPageX, c.incValue)
	case 0xEE:
		c.rmw(AddrAbsolute, c.incValue)
	case 0xFE:
		c.rmw(AddrAbsoluteX, c.incValue)
	case 0xC6:
		c.rmw(AddrZeroPage, c.decValue)
	case 0xD6:
		c.rmw(AddrZeroPageX, c.decValue)
	case 0xCE:
		c.rmw(AddrAbsolute, c.decValue)
	case 0xDE:
		c.rmw(AddrAbsoluteX, c.decValue)

	case 0xE8:
		c.implied()
		c.X++
		c.setNZ(c.X)
	case 0xC8:
		c.implied()
		c.Y++
		c.setNZ(c.Y)
	case 0xCA:
		c.implied()
		c.X--
		c.setNZ(c.X)
	case 0x88:
		c.implied()
		c.Y--
		c.setNZ(c.Y)

	// Transfers
	case 0xAA:
		c.implied()
		c.X = c.A
		c.setNZ(c.X)
	case 0xA8:
		c.implied()
		c.Y = c.A
		c.setNZ(c.Y)
	case 0x8A:
		c.implied()
		c.A = c.X
		c.setNZ(c.A)
	case 0x98:
		c.implied()
		c.A = c.Y
		c.setNZ(c.A)
	case 0xBA:
		c.implied()
		c.X = c.SP
		c.setNZ(c.X)
	case 0x9A:
		c.implied()
		c.SP = c.X

	// Branches
	case 0x90:
		c.branch(!c.getFlag(FlagCarry))
	case 0xB0:
		c.branch(c.getFlag(FlagCarry))
	case 0xD0:
		c.branch(!c.getFlag(FlagZero))
	case 0xF0:
		c.branch(c.getFlag(FlagZero))
	case 0x10:
		c.branch(!c.getFlag(FlagNegative))
	case 0x30:
		c.branch(c.getFlag(FlagNegative))
	case 0x50:
		c.branch(!c.getFlag(FlagOverflow))
	case 0x70:
		c.branch(c.getFlag(FlagOverflow))

	// Jumps and returns
	case 0x4C:
		c.PC = c.fetch16()
	case 0x6C:
		ptr := c.fetch16()
		lo := uint16(c.read(ptr))
		// The 6502 wraps the pointer's low byte without carrying
		// into the high byte.
		hi := uint16(c.read(ptr&0xFF00 | (ptr+1)&0x00FF))
		c.PC = hi<<8 | lo
	case 0x20:
		lo := uint16(c.fetch())
		c.read(stackBase | uint16(c.SP))
		c.push16(c.PC)
		hi := uint16(c.read(c.PC))
		c.PC = hi<<8 | lo
	case 0x60:
		c.read(c.PC)
		c.read(stackBase | uint16(c.SP))
		c.PC = c.pop16()
		c.read(c.PC)
		c.PC++
	case 0x40:
		c.read(c.PC)
		c.read(stackBase | uint16(c.SP))
		c.P = c.pop()&^FlagBreak | FlagUnused
		c.PC = c.pop16()

	// Stack
	case 0x48:
		c.implied()
		c.push(c.A)
	case 0x08:
		c.implied()
		c.push(c.P | FlagBreak | FlagUnused)
	case 0x68:
		c.implied()
		c.read(stackBase | uint16(c.SP))
		c.A = c.pop()
		c.setNZ(c.A)
	case 0x28:
		c.implied()
		c.read(stackBase | uint16(c.SP))
		c.P = c.pop()&^FlagBreak | FlagUnused

	// Flag operations
	case 0x38:
		c.implied()
		c.setFlag(FlagCarry, true)
	case 0x18:
		c.implied()
		c.setFlag(FlagCarry, false)
	case 0xF8:
		c.implied()
		c.setFlag(FlagDecimal, true)
	case 0xD8:
		c.implied()
		c.setFlag(FlagDecimal, false)
	case 0x78:
		c.implied()
		c.setFlag(FlagInterrupt, true)
	case 0x58:
		c.implied()
		c.setFlag(FlagInterrupt, false)
	case 0xB8:
		c.implied()
		c.setFlag(FlagOverflow, false)

	// BRK: the padding byte is fetched and discarded, P is pushed
	// with B set, and the IRQ vector is taken with I set so the
	// sequence cannot be re-entered by a level interrupt.
	case 0x00:
		c.read(c.PC)
		c.PC++
		c.push16(c.PC)
		c.push(c.P | FlagBreak | FlagUnused)
		c.setFlag(FlagInterrupt, true)
		c.PC = c.read16(irqVector)

	case 0xEA:
		c.implied()

	// Undocumented: SLO (ASL + ORA)
	case 0x07:
		c.slo(AddrZeroPage)
	case 0x17:
		c.slo(AddrZeroPageX)
	case 0x0F:
		c.slo(AddrAbsolute)
	case 0x1F:
		c.slo(AddrAbsoluteX)
	case 0x1B:
		c.slo(AddrAbsoluteY)
	case 0x03:
		c.slo(AddrIndexedIndirect)
	case 0x13:
		c.slo(AddrIndirectIndexed)

	// Undocumented: RLA (ROL + AND)
	case 0x27:
		c.rla(AddrZeroPage)
	case 0x37:
		c.rla(AddrZeroPageX)
	case 0x2F:
		c.rla(AddrAbsolute)
	case 0x3F:
		c.rla(AddrAbsoluteX)
	case 0x3B:
		c.rla(AddrAbsoluteY)
	case 0x23:
		c.rla(AddrIndexedIndirect)
	case 0x33:
		c.rla(AddrIndirectIndexed)

	// Undocumented: SRE (LSR + EOR)
	case 0x47:
		c.sre(AddrZeroPage)
	case 0x57:
		c.sre(AddrZeroPageX)
	case 0x4F:
		c.sre(AddrAbsolute)
	case 0x5F:
		c.sre(AddrAbsoluteX)
	case 0x5B:
		c.sre(AddrAbsoluteY)
	case 0x43:
		c.sre(AddrIndexedIndirect)
	case 0x53:
		c.sre(AddrIndirectIndexed)

	// Undocumented: RRA (ROR + ADC)
	case 0x67:
		c.rra(AddrZeroPage)
	case 0x77:
		c.rra(AddrZeroPageX)
	case 0x6F:
		c.rra(AddrAbsolute)
	case 0x7F:
		c.rra(AddrAbsoluteX)
	case 0x7B:
		c.rra(AddrAbsoluteY)
	case 0x63:
		c.rra(AddrIndexedIndirect)
	case 0x73:
		c.rra(AddrIndirectIndexed)

	// Undocumented: DCP (DEC + CMP)
	case 0xC7:
		c.dcp(AddrZeroPage)
	case 0xD7:
		c.dcp(AddrZeroPageX)
	case 0xCF:
		c.dcp(AddrAbsolute)
	case 0xDF:
		c.dcp(AddrAbsoluteX)
	case 0xDB:
		c.dcp(AddrAbsoluteY)
	case 0xC3:
		c.dcp(AddrIndexedIndirect)
	case 0xD3:
		c.dcp(AddrIndirectIndexed)

	// Undocumented: ISB (INC + SBC)
	case 0xE7:
		c.isb(AddrZeroPage)
	case 0xF7:
		c.isb(AddrZeroPageX)
	case 0xEF:
		c.isb(AddrAbsolute)
	case 0xFF:
		c.isb(AddrAbsoluteX)
	case 0xFB:
		c.isb(AddrAbsoluteY)
	case 0xE3:
		c.isb(AddrIndexedIndirect)
	case 0xF3:
		c.isb(AddrIndirectIndexed)

	// Undocumented: LAX (LDA + LDX)
	case 0xA7:
		c.lax(AddrZeroPage)
	case 0xB7:
		c.lax(AddrZeroPageY)
	case 0xAF:
		c.lax(AddrAbsolute)
	case 0xBF:
		c.lax(AddrAbsoluteY)
	case 0xA3:
		c.lax(AddrIndexedIndirect)
	case 0xB3:
		c.lax(AddrIndirectIndexed)
	case 0xAB: // ATX
		c.lax(AddrImmediate)

	// Undocumented: SAX (store A & X)
	case 0x87:
		c.store(AddrZeroPage, c.A&c.X)
	case 0x97:
		c.store(AddrZeroPageY, c.A&c.X)
	case 0x8F:
		c.store(AddrAbsolute, c.A&c.X)
	case 0x83:
		c.store(AddrIndexedIndirect, c.A&c.X)

	// Undocumented immediates
	case 0x0B, 0x2B: // AAC
		v := c.read(c.operand(AddrImmediate, accRead))
		c.A &= v
		c.setNZ(c.A)
		c.setFlag(FlagCarry, c.getFlag(FlagNegative))
	case 0x4B: // ASR
		v := c.read(c.operand(AddrImmediate, accRead))
		c.A &= v
		c.A = c.lsrValue(c.A)
	case 0x6B: // ARR
		v := c.read(c.operand(AddrImmediate, accRead))
		c.A &= v
		carry := uint8(0)
		if c.getFlag(FlagCarry) {
			carry = 0x80
		}
		c.A = c.A>>1 | carry
		c.setNZ(c.A)
		c.setFlag(FlagCarry, c.A&0x40 != 0)
		c.setFlag(FlagOverflow, (c.A>>6)&1 != (c.A>>5)&1)
	case 0xCB: // AXS
		v := c.read(c.operand(AddrImmediate, accRead))
		t := c.A & c.X
		c.setFlag(FlagCarry, t >= v)
		c.X = t - v
		c.setNZ(c.X)

	// Undocumented stores with the high-byte quirk
	case 0x9C: // SYA abs,X
		c.storeHigh(c.Y, c.X)
	case 0x9E: // SXA abs,Y
		c.storeHigh(c.X, c.Y)

	// NOP variants
	case 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		c.implied()
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.nop(AddrImmediate)
	case 0x04, 0x44, 0x64:
		c.nop(AddrZeroPage)
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.nop(AddrZeroPageX)
	case 0x0C:
		c.nop(AddrAbsolute)
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		c.nop(AddrAbsoluteX)

	default:
		// Unassigned opcodes. Software that reaches one is broken,
		// but the core must stay on its feet.
		logger.LogWarn("unassigned opcode $%02X at PC=$%04X", opcode, c.PC-1)
		c.implied()
	}
}

// implied performs the throwaway read that every one-byte opcode
// makes of the byte after it.
func (c *CPU) implied() {
	c.read(c.PC)
}

func (c *CPU) lda(mode AddressingMode) {
	c.A = c.read(c.operand(mode, accRead))
	c.setNZ(c.A)
}

func (c *CPU) ldx(mode AddressingMode) {
	c.X = c.read(c.operand(mode, accRead))
	c.setNZ(c.X)
}

func (c *CPU) ldy(mode AddressingMode) {
	c.Y = c.read(c.operand(mode, accRead))
	c.setNZ(c.Y)
}

func (c *CPU) store(mode AddressingMode, v uint8) {
	c.write(c.operand(mode, accWrite), v)
}

func (c *CPU) adcValue(v uint8) {
	a := uint16(c.A)
	b := uint16(v)
	r := a + b
	if c.getFlag(FlagCarry) {
		r++
	}
	c.setFlag(FlagCarry, r > 0xFF)
	c.setFlag(FlagOverflow, (a^r)&(b^r)&0x80 != 0)
	c.A = uint8(r)
	c.setNZ(c.A)
}

func (c *CPU) adc(mode AddressingMode) {
	c.adcValue(c.read(c.operand(mode, accRead)))
}

func (c *CPU) sbc(mode AddressingMode) {
	c.adcValue(^c.read(c.operand(mode, accRead)))
}

func (c *CPU) compare(mode AddressingMode, reg uint8) {
	v := c.read(c.operand(mode, accRead))
	c.setFlag(FlagCarry, reg >= v)
	c.setNZ(reg - v)
}

func (c *CPU) and(mode AddressingMode) {
	c.A &= c.read(c.operand(mode, accRead))
	c.setNZ(c.A)
}

func (c *CPU) ora(mode AddressingMode) {
	c.A |= c.read(c.operand(mode, accRead))
	c.setNZ(c.A)
}

func (c *CPU) eor(mode AddressingMode) {
	c.A ^= c.read(c.operand(mode, accRead))
	c.setNZ(c.A)
}

func (c *CPU) bit(mode AddressingMode) {
	v := c.read(c.operand(mode, accRead))
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
	c.setFlag(FlagZero, c.A&v == 0)
}

// rmw runs a read-modify-write opcode: read, dummy write of the old
// value, write of the new. It returns the new value for the combined
// undocumented opcodes.
func (c *CPU) rmw(mode AddressingMode, f func(uint8) uint8) uint8 {
	if mode == AddrAccumulator {
		c.read(c.PC)
		c.A = f(c.A)
		return c.A
	}
	addr := c.operand(mode, accRMW)
	v := c.read(addr)
	c.write(addr, v)
	nv := f(v)
	c.write(addr, nv)
	return nv
}

func (c *CPU) aslValue(v uint8) uint8 {
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.setNZ(v)
	return v
}

func (c *CPU) lsrValue(v uint8) uint8 {
	c.setFlag(FlagCarry, v&1 != 0)
	v >>= 1
	c.setNZ(v)
	return v
}

func (c *CPU) rolValue(v uint8) uint8 {
	carry := uint8(0)
	if c.getFlag(FlagCarry) {
		carry = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = v<<1 | carry
	c.setNZ(v)
	return v
}

func (c *CPU) rorValue(v uint8) uint8 {
	carry := uint8(0)
	if c.getFlag(FlagCarry) {
		carry = 0x80
	}
	c.setFlag(FlagCarry, v&1 != 0)
	v = v>>1 | carry
	c.setNZ(v)
	return v
}

func (c *CPU) incValue(v uint8) uint8 {
	v++
	c.setNZ(v)
	return v
}

func (c *CPU) decValue(v uint8) uint8 {
	v--
	c.setNZ(v)
	return v
}

func (c *CPU) branch(taken bool) {
	rel := int8(c.fetch())
	if !taken {
		return
	}
	c.read(c.PC)
	old := c.PC
	c.PC = old + uint16(int16(rel))
	if old&0xFF00 != c.PC&0xFF00 {
		c.read(old&0xFF00 | c.PC&0x00FF)
	}
}

func (c *CPU) slo(mode AddressingMode) {
	v := c.rmw(mode, c.aslValue)
	c.A |= v
	c.setNZ(c.A)
}

func (c *CPU) rla(mode AddressingMode) {
	v := c.rmw(mode, c.rolValue)
	c.A &= v
	c.setNZ(c.A)
}

func (c *CPU) sre(mode AddressingMode) {
	v := c.rmw(mode, c.lsrValue)
	c.A ^= v
	c.setNZ(c.A)
}

func (c *CPU) rra(mode AddressingMode) {
	v := c.rmw(mode, c.rorValue)
	c.adcValue(v)
}

func (c *CPU) dcp(mode AddressingMode) {
	v := c.rmw(mode, c.decValue)
	c.setFlag(FlagCarry, c.A >= v)
	c.setNZ(c.A - v)
}

func (c *CPU) isb(mode AddressingMode) {
	v := c.rmw(mode, c.incValue)
	c.adcValue(^v)
}

func (c *CPU) lax(mode AddressingMode) {
	v := c.read(c.operand(mode, accRead))
	c.A = v
	c.X = v
	c.setNZ(v)
}

func (c *CPU) nop(mode AddressingMode) {
	c.read(c.operand(mode, accRead))
}

// storeHigh implements the SYA/SXA store: the written value is the
// register ANDed with the base high byte plus one, and on a page
// crossing that value replaces the effective high byte as well.
func (c *CPU) storeHigh(reg, index uint8) {
	base := c.fetch16()
	addr := base + uint16(index)
	c.read(base&0xFF00 | addr&0x00FF)
	v := reg & (uint8(base>>8) + 1)
	if base&0xFF00 != addr&0xFF00 {
		addr = uint16(v)<<8 | addr&0x00FF
	}
	c.write(addr, v)
}
