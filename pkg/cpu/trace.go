package cpu

import "fmt"

// Disassemble renders one instruction at addr using the peeked bytes.
// It returns the text and the instruction length.
func Disassemble(addr uint16, b0, b1, b2 uint8) (string, int) {
	info := Opcodes[b0]
	opr16 := uint16(b2)<<8 | uint16(b1)

	switch info.Mode {
	case AddrImplied, AddrUnknown:
		return info.Name, 1
	case AddrAccumulator:
		return fmt.Sprintf("%s A", info.Name), 1
	case AddrImmediate:
		return fmt.Sprintf("%s #$%02X", info.Name, b1), 2
	case AddrZeroPage:
		return fmt.Sprintf("%s $%02X", info.Name, b1), 2
	case AddrZeroPageX:
		return fmt.Sprintf("%s $%02X,X", info.Name, b1), 2
	case AddrZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", info.Name, b1), 2
	case AddrRelative:
		target := addr + 2 + uint16(int16(int8(b1)))
		return fmt.Sprintf("%s $%04X", info.Name, target), 2
	case AddrAbsolute:
		return fmt.Sprintf("%s $%04X", info.Name, opr16), 3
	case AddrAbsoluteX:
		return fmt.Sprintf("%s $%04X,X", info.Name, opr16), 3
	case AddrAbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", info.Name, opr16), 3
	case AddrIndirect:
		return fmt.Sprintf("%s ($%04X)", info.Name, opr16), 3
	case AddrIndexedIndirect:
		return fmt.Sprintf("%s ($%02X,X)", info.Name, b1), 2
	case AddrIndirectIndexed:
		return fmt.Sprintf("%s ($%02X),Y", info.Name, b1), 2
	}
	return info.Name, 1
}

// traceLine formats the nestest-style execution trace for the
// instruction about to run. Uses Peek so the devices do not advance.
func (c *CPU) traceLine() string {
	b0 := c.bus.Peek(c.PC)
	b1 := c.bus.Peek(c.PC + 1)
	b2 := c.bus.Peek(c.PC + 2)

	asm, length := Disassemble(c.PC, b0, b1, b2)

	var raw string
	switch length {
	case 1:
		raw = fmt.Sprintf("%02X", b0)
	case 2:
		raw = fmt.Sprintf("%02X %02X", b0, b1)
	default:
		raw = fmt.Sprintf("%02X %02X %02X", b0, b1, b2)
	}

	mark := " "
	if !Opcodes[b0].Official {
		mark = "*"
	}

	return fmt.Sprintf("%04X  %-8s %s%-31s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.PC, raw, mark, asm, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
}
