package cpu

// Opcode describes one dispatch-table entry for the disassembler.
type Opcode struct {
	Name     string
	Mode     AddressingMode
	Official bool
}

// Length returns the instruction length in bytes for a mode.
func (m AddressingMode) Length() int {
	switch m {
	case AddrImplied, AddrAccumulator, AddrUnknown:
		return 1
	case AddrImmediate, AddrZeroPage, AddrZeroPageX, AddrZeroPageY,
		AddrRelative, AddrIndexedIndirect, AddrIndirectIndexed:
		return 2
	default:
		return 3
	}
}

// Opcodes is the full 256-entry table.
var Opcodes [256]Opcode

func init() {
	for i := range Opcodes {
		Opcodes[i] = Opcode{"UNK", AddrUnknown, false}
	}

	official := func(op uint8, name string, mode AddressingMode) {
		Opcodes[op] = Opcode{name, mode, true}
	}
	illegal := func(op uint8, name string, mode AddressingMode) {
		Opcodes[op] = Opcode{name, mode, false}
	}

	official(0xA9, "LDA", AddrImmediate)
	official(0xA5, "LDA", AddrZeroPage)
	official(0xB5, "LDA", AddrZeroPageX)
	official(0xAD, "LDA", AddrAbsolute)
	official(0xBD, "LDA", AddrAbsoluteX)
	official(0xB9, "LDA", AddrAbsoluteY)
	official(0xA1, "LDA", AddrIndexedIndirect)
	official(0xB1, "LDA", AddrIndirectIndexed)

	official(0xA2, "LDX", AddrImmediate)
	official(0xA6, "LDX", AddrZeroPage)
	official(0xB6, "LDX", AddrZeroPageY)
	official(0xAE, "LDX", AddrAbsolute)
	official(0xBE, "LDX", AddrAbsoluteY)

	official(0xA0, "LDY", AddrImmediate)
	official(0xA4, "LDY", AddrZeroPage)
	official(0xB4, "LDY", AddrZeroPageX)
	official(0xAC, "LDY", AddrAbsolute)
	official(0xBC, "LDY", AddrAbsoluteX)

	official(0x85, "STA", AddrZeroPage)
	official(0x95, "STA", AddrZeroPageX)
	official(0x8D, "STA", AddrAbsolute)
	official(0x9D, "STA", AddrAbsoluteX)
	official(0x99, "STA", AddrAbsoluteY)
	official(0x81, "STA", AddrIndexedIndirect)
	official(0x91, "STA", AddrIndirectIndexed)

	official(0x86, "STX", AddrZeroPage)
	official(0x96, "STX", AddrZeroPageY)
	official(0x8E, "STX", AddrAbsolute)

	official(0x84, "STY", AddrZeroPage)
	official(0x94, "STY", AddrZeroPageX)
	official(0x8C, "STY", AddrAbsolute)

	official(0x69, "ADC", AddrImmediate)
	official(0x65, "ADC", AddrZeroPage)
	official(0x75, "ADC", AddrZeroPageX)
	official(0x6D, "ADC", AddrAbsolute)
	official(0x7D, "ADC", AddrAbsoluteX)
	official(0x79, "ADC", AddrAbsoluteY)
	official(0x61, "ADC", AddrIndexedIndirect)
	official(0x71, "ADC", AddrIndirectIndexed)

	official(0xE9, "SBC", AddrImmediate)
	official(0xE5, "SBC", AddrZeroPage)
	official(0xF5, "SBC", AddrZeroPageX)
	official(0xED, "SBC", AddrAbsolute)
	official(0xFD, "SBC", AddrAbsoluteX)
	official(0xF9, "SBC", AddrAbsoluteY)
	official(0xE1, "SBC", AddrIndexedIndirect)
	official(0xF1, "SBC", AddrIndirectIndexed)

	official(0xC9, "CMP", AddrImmediate)
	official(0xC5, "CMP", AddrZeroPage)
	official(0xD5, "CMP", AddrZeroPageX)
	official(0xCD, "CMP", AddrAbsolute)
	official(0xDD, "CMP", AddrAbsoluteX)
	official(0xD9, "CMP", AddrAbsoluteY)
	official(0xC1, "CMP", AddrIndexedIndirect)
	official(0xD1, "CMP", AddrIndirectIndexed)

	official(0xE0, "CPX", AddrImmediate)
	official(0xE4, "CPX", AddrZeroPage)
	official(0xEC, "CPX", AddrAbsolute)

	official(0xC0, "CPY", AddrImmediate)
	official(0xC4, "CPY", AddrZeroPage)
	official(0xCC, "CPY", AddrAbsolute)

	official(0x29, "AND", AddrImmediate)
	official(0x25, "AND", AddrZeroPage)
	official(0x35, "AND", AddrZeroPageX)
	official(0x2D, "AND", AddrAbsolute)
	official(0x3D, "AND", AddrAbsoluteX)
	official(0x39, "AND", AddrAbsoluteY)
	official(0x21, "AND", AddrIndexedIndirect)
	official(0x31, "AND", AddrIndirectIndexed)

	official(0x09, "ORA", AddrImmediate)
	official(0x05, "ORA", AddrZeroPage)
	official(0x15, "ORA", AddrZeroPageX)
	official(0x0D, "ORA", AddrAbsolute)
	official(0x1D, "ORA", AddrAbsoluteX)
	official(0x19, "ORA", AddrAbsoluteY)
	official(0x01, "ORA", AddrIndexedIndirect)
	official(0x11, "ORA", AddrIndirectIndexed)

	official(0x49, "EOR", AddrImmediate)
	official(0x45, "EOR", AddrZeroPage)
	official(0x55, "EOR", AddrZeroPageX)
	official(0x4D, "EOR", AddrAbsolute)
	official(0x5D, "EOR", AddrAbsoluteX)
	official(0x59, "EOR", AddrAbsoluteY)
	official(0x41, "EOR", AddrIndexedIndirect)
	official(0x51, "EOR", AddrIndirectIndexed)

	official(0x24, "BIT", AddrZeroPage)
	official(0x2C, "BIT", AddrAbsolute)

	official(0x0A, "ASL", AddrAccumulator)
	official(0x06, "ASL", AddrZeroPage)
	official(0x16, "ASL", AddrZeroPageX)
	official(0x0E, "ASL", AddrAbsolute)
	official(0x1E, "ASL", AddrAbsoluteX)

	official(0x4A, "LSR", AddrAccumulator)
	official(0x46, "LSR", AddrZeroPage)
	official(0x56, "LSR", AddrZeroPageX)
	official(0x4E, "LSR", AddrAbsolute)
	official(0x5E, "LSR", AddrAbsoluteX)

	official(0x2A, "ROL", AddrAccumulator)
	official(0x26, "ROL", AddrZeroPage)
	official(0x36, "ROL", AddrZeroPageX)
	official(0x2E, "ROL", AddrAbsolute)
	official(0x3E, "ROL", AddrAbsoluteX)

	official(0x6A, "ROR", AddrAccumulator)
	official(0x66, "ROR", AddrZeroPage)
	official(0x76, "ROR", AddrZeroPageX)
	official(0x6E, "ROR", AddrAbsolute)
	official(0x7E, "ROR", AddrAbsoluteX)

	official(0xE6, "INC", AddrZeroPage)
	official(0xF6, "INC", AddrZeroPageX)
	official(0xEE, "INC", AddrAbsolute)
	official(0xFE, "INC", AddrAbsoluteX)
	official(0xC6, "DEC", AddrZeroPage)
	official(0xD6, "DEC", AddrZeroPageX)
	official(0xCE, "DEC", AddrAbsolute)
	official(0xDE, "DEC", AddrAbsoluteX)

	official(0xE8, "INX", AddrImplied)
	official(0xC8, "INY", AddrImplied)
	official(0xCA, "DEX", AddrImplied)
	official(0x88, "DEY", AddrImplied)

	official(0xAA, "TAX", AddrImplied)
	official(0xA8, "TAY", AddrImplied)
	official(0x8A, "TXA", AddrImplied)
	official(0x98, "TYA", AddrImplied)
	official(0xBA, "TSX", AddrImplied)
	official(0x9A, "TXS", AddrImplied)

	official(0x90, "BCC", AddrRelative)
	official(0xB0, "BCS", AddrRelative)
	official(0xD0, "BNE", AddrRelative)
	official(0xF0, "BEQ", AddrRelative)
	official(0x10, "BPL", AddrRelative)
	official(0x30, "BMI", AddrRelative)
	official(0x50, "BVC", AddrRelative)
	official(0x70, "BVS", AddrRelative)

	official(0x4C, "JMP", AddrAbsolute)
	official(0x6C, "JMP", AddrIndirect)
	official(0x20, "JSR", AddrAbsolute)
	official(0x60, "RTS", AddrImplied)
	official(0x40, "RTI", AddrImplied)
	official(0x00, "BRK", AddrImplied)

	official(0x48, "PHA", AddrImplied)
	official(0x08, "PHP", AddrImplied)
	official(0x68, "PLA", AddrImplied)
	official(0x28, "PLP", AddrImplied)

	official(0x38, "SEC", AddrImplied)
	official(0x18, "CLC", AddrImplied)
	official(0xF8, "SED", AddrImplied)
	official(0xD8, "CLD", AddrImplied)
	official(0x78, "SEI", AddrImplied)
	official(0x58, "CLI", AddrImplied)
	official(0xB8, "CLV", AddrImplied)

	official(0xEA, "NOP", AddrImplied)

	illegal(0x07, "SLO", AddrZeroPage)
	illegal(0x17, "SLO", AddrZeroPageX)
	illegal(0x0F, "SLO", AddrAbsolute)
	illegal(0x1F, "SLO", AddrAbsoluteX)
	illegal(0x1B, "SLO", AddrAbsoluteY)
	illegal(0x03, "SLO", AddrIndexedIndirect)
	illegal(0x13, "SLO", AddrIndirectIndexed)

	illegal(0x27, "RLA", AddrZeroPage)
	illegal(0x37, "RLA", AddrZeroPageX)
	illegal(0x2F, "RLA", AddrAbsolute)
	illegal(0x3F, "RLA", AddrAbsoluteX)
	illegal(0x3B, "RLA", AddrAbsoluteY)
	illegal(0x23, "RLA", AddrIndexedIndirect)
	illegal(0x33, "RLA", AddrIndirectIndexed)

	illegal(0x47, "SRE", AddrZeroPage)
	illegal(0x57, "SRE", AddrZeroPageX)
	illegal(0x4F, "SRE", AddrAbsolute)
	illegal(0x5F, "SRE", AddrAbsoluteX)
	illegal(0x5B, "SRE", AddrAbsoluteY)
	illegal(0x43, "SRE", AddrIndexedIndirect)
	illegal(0x53, "SRE", AddrIndirectIndexed)

	illegal(0x67, "RRA", AddrZeroPage)
	illegal(0x77, "RRA", AddrZeroPageX)
	illegal(0x6F, "RRA", AddrAbsolute)
	illegal(0x7F, "RRA", AddrAbsoluteX)
	illegal(0x7B, "RRA", AddrAbsoluteY)
	illegal(0x63, "RRA", AddrIndexedIndirect)
	illegal(0x73, "RRA", AddrIndirectIndexed)

	illegal(0xC7, "DCP", AddrZeroPage)
	illegal(0xD7, "DCP", AddrZeroPageX)
	illegal(0xCF, "DCP", AddrAbsolute)
	illegal(0xDF, "DCP", AddrAbsoluteX)
	illegal(0xDB, "DCP", AddrAbsoluteY)
	illegal(0xC3, "DCP", AddrIndexedIndirect)
	illegal(0xD3, "DCP", AddrIndirectIndexed)

	illegal(0xE7, "ISB", AddrZeroPage)
	illegal(0xF7, "ISB", AddrZeroPageX)
	illegal(0xEF, "ISB", AddrAbsolute)
	illegal(0xFF, "ISB", AddrAbsoluteX)
	illegal(0xFB, "ISB", AddrAbsoluteY)
	illegal(0xE3, "ISB", AddrIndexedIndirect)
	illegal(0xF3, "ISB", AddrIndirectIndexed)

	illegal(0xA7, "LAX", AddrZeroPage)
	illegal(0xB7, "LAX", AddrZeroPageY)
	illegal(0xAF, "LAX", AddrAbsolute)
	illegal(0xBF, "LAX", AddrAbsoluteY)
	illegal(0xA3, "LAX", AddrIndexedIndirect)
	illegal(0xB3, "LAX", AddrIndirectIndexed)
	illegal(0xAB, "ATX", AddrImmediate)

	illegal(0x87, "SAX", AddrZeroPage)
	illegal(0x97, "SAX", AddrZeroPageY)
	illegal(0x8F, "SAX", AddrAbsolute)
	illegal(0x83, "SAX", AddrIndexedIndirect)

	illegal(0x0B, "AAC", AddrImmediate)
	illegal(0x2B, "AAC", AddrImmediate)
	illegal(0x4B, "ASR", AddrImmediate)
	illegal(0x6B, "ARR", AddrImmediate)
	illegal(0xCB, "AXS", AddrImmediate)
	illegal(0xEB, "SBC", AddrImmediate)
	illegal(0x9C, "SYA", AddrAbsoluteX)
	illegal(0x9E, "SXA", AddrAbsoluteY)

	illegal(0x1A, "NOP", AddrImplied)
	illegal(0x3A, "NOP", AddrImplied)
	illegal(0x5A, "NOP", AddrImplied)
	illegal(0x7A, "NOP", AddrImplied)
	illegal(0xDA, "NOP", AddrImplied)
	illegal(0xFA, "NOP", AddrImplied)
	illegal(0x80, "NOP", AddrImmediate)
	illegal(0x82, "NOP", AddrImmediate)
	illegal(0x89, "NOP", AddrImmediate)
	illegal(0xC2, "NOP", AddrImmediate)
	illegal(0xE2, "NOP", AddrImmediate)
	illegal(0x04, "NOP", AddrZeroPage)
	illegal(0x44, "NOP", AddrZeroPage)
	illegal(0x64, "NOP", AddrZeroPage)
	illegal(0x14, "NOP", AddrZeroPageX)
	illegal(0x34, "NOP", AddrZeroPageX)
	illegal(0x54, "NOP", AddrZeroPageX)
	illegal(0x74, "NOP", AddrZeroPageX)
	illegal(0xD4, "NOP", AddrZeroPageX)
	illegal(0xF4, "NOP", AddrZeroPageX)
	illegal(0x0C, "NOP", AddrAbsolute)
	illegal(0x1C, "NOP", AddrAbsoluteX)
	illegal(0x3C, "NOP", AddrAbsoluteX)
	illegal(0x5C, "NOP", AddrAbsoluteX)
	illegal(0x7C, "NOP", AddrAbsoluteX)
	illegal(0xDC, "NOP", AddrAbsoluteX)
	illegal(0xFC, "NOP", AddrAbsoluteX)
}
