package interp

// Executor is the shape every mnemonic handler satisfies: given the
// Interp with curMode/curAddr already resolved, apply the instruction's
// semantics and report any error.
type Executor func(i *Interp) error

// Descriptor pairs a byte value's decoded shape (addressing mode, operand
// length, cycle count, for debugger display) with the handler that
// implements it.
type Descriptor struct {
	Name    string
	Mode    AddressingMode
	Length  byte
	Cycles  byte
	Execute Executor
}

// opcodeTable is indexed directly by the fetched opcode byte; nil entries
// are the ~105 byte values with no official instruction, and Step reports
// UnknownOpcodeError for them.
var opcodeTable [256]*Descriptor

func def(value byte, name string, mode AddressingMode, cycles byte, fn Executor) {
	opcodeTable[value] = &Descriptor{
		Name:    name,
		Mode:    mode,
		Length:  modeLength(mode),
		Cycles:  cycles,
		Execute: fn,
	}
}

func init() {
	def(0x69, "ADC", Immediate, 2, opADC)
	def(0x65, "ADC", ZeroPage, 3, opADC)
	def(0x75, "ADC", ZeroPageX, 4, opADC)
	def(0x6D, "ADC", Absolute, 4, opADC)
	def(0x7D, "ADC", AbsoluteX, 4, opADC)
	def(0x79, "ADC", AbsoluteY, 4, opADC)
	def(0x61, "ADC", IndirectX, 6, opADC)
	def(0x71, "ADC", IndirectY, 5, opADC)

	def(0x29, "AND", Immediate, 2, opAND)
	def(0x25, "AND", ZeroPage, 3, opAND)
	def(0x35, "AND", ZeroPageX, 4, opAND)
	def(0x2D, "AND", Absolute, 4, opAND)
	def(0x3D, "AND", AbsoluteX, 4, opAND)
	def(0x39, "AND", AbsoluteY, 4, opAND)
	def(0x21, "AND", IndirectX, 6, opAND)
	def(0x31, "AND", IndirectY, 5, opAND)

	def(0x0A, "ASL", Accumulator, 2, opASL)
	def(0x06, "ASL", ZeroPage, 5, opASL)
	def(0x16, "ASL", ZeroPageX, 6, opASL)
	def(0x0E, "ASL", Absolute, 6, opASL)
	def(0x1E, "ASL", AbsoluteX, 7, opASL)

	def(0x24, "BIT", ZeroPage, 3, opBIT)
	def(0x2C, "BIT", Absolute, 4, opBIT)

	def(0x00, "BRK", Implied, 7, opBRK)

	def(0xC9, "CMP", Immediate, 2, opCMP)
	def(0xC5, "CMP", ZeroPage, 3, opCMP)
	def(0xD5, "CMP", ZeroPageX, 4, opCMP)
	def(0xCD, "CMP", Absolute, 4, opCMP)
	def(0xDD, "CMP", AbsoluteX, 4, opCMP)
	def(0xD9, "CMP", AbsoluteY, 4, opCMP)
	def(0xC1, "CMP", IndirectX, 6, opCMP)
	def(0xD1, "CMP", IndirectY, 5, opCMP)

	def(0xE0, "CPX", Immediate, 2, opCPX)
	def(0xE4, "CPX", ZeroPage, 3, opCPX)
	def(0xEC, "CPX", Absolute, 4, opCPX)

	def(0xC0, "CPY", Immediate, 2, opCPY)
	def(0xC4, "CPY", ZeroPage, 3, opCPY)
	def(0xCC, "CPY", Absolute, 4, opCPY)

	def(0xC6, "DEC", ZeroPage, 5, opDEC)
	def(0xD6, "DEC", ZeroPageX, 6, opDEC)
	def(0xCE, "DEC", Absolute, 6, opDEC)
	def(0xDE, "DEC", AbsoluteX, 7, opDEC)

	def(0x49, "EOR", Immediate, 2, opEOR)
	def(0x45, "EOR", ZeroPage, 3, opEOR)
	def(0x55, "EOR", ZeroPageX, 4, opEOR)
	def(0x4D, "EOR", Absolute, 4, opEOR)
	def(0x5D, "EOR", AbsoluteX, 4, opEOR)
	def(0x59, "EOR", AbsoluteY, 4, opEOR)
	def(0x41, "EOR", IndirectX, 6, opEOR)
	def(0x51, "EOR", IndirectY, 5, opEOR)

	def(0xE6, "INC", ZeroPage, 5, opINC)
	def(0xF6, "INC", ZeroPageX, 6, opINC)
	def(0xEE, "INC", Absolute, 6, opINC)
	def(0xFE, "INC", AbsoluteX, 7, opINC)

	def(0x4C, "JMP", Absolute, 3, opJMP)
	def(0x6C, "JMP", Indirect, 5, opJMP)

	def(0x20, "JSR", Absolute, 6, opJSR)

	def(0xA9, "LDA", Immediate, 2, opLDA)
	def(0xA5, "LDA", ZeroPage, 3, opLDA)
	def(0xB5, "LDA", ZeroPageX, 4, opLDA)
	def(0xAD, "LDA", Absolute, 4, opLDA)
	def(0xBD, "LDA", AbsoluteX, 4, opLDA)
	def(0xB9, "LDA", AbsoluteY, 4, opLDA)
	def(0xA1, "LDA", IndirectX, 6, opLDA)
	def(0xB1, "LDA", IndirectY, 5, opLDA)

	def(0xA2, "LDX", Immediate, 2, opLDX)
	def(0xA6, "LDX", ZeroPage, 3, opLDX)
	def(0xB6, "LDX", ZeroPageY, 4, opLDX)
	def(0xAE, "LDX", Absolute, 4, opLDX)
	def(0xBE, "LDX", AbsoluteY, 4, opLDX)

	def(0xA0, "LDY", Immediate, 2, opLDY)
	def(0xA4, "LDY", ZeroPage, 3, opLDY)
	def(0xB4, "LDY", ZeroPageX, 4, opLDY)
	def(0xAC, "LDY", Absolute, 4, opLDY)
	def(0xBC, "LDY", AbsoluteX, 4, opLDY)

	def(0x4A, "LSR", Accumulator, 2, opLSR)
	def(0x46, "LSR", ZeroPage, 5, opLSR)
	def(0x56, "LSR", ZeroPageX, 6, opLSR)
	def(0x4E, "LSR", Absolute, 6, opLSR)
	def(0x5E, "LSR", AbsoluteX, 7, opLSR)

	def(0xEA, "NOP", Implied, 2, opNOP)

	def(0x09, "ORA", Immediate, 2, opORA)
	def(0x05, "ORA", ZeroPage, 3, opORA)
	def(0x15, "ORA", ZeroPageX, 4, opORA)
	def(0x0D, "ORA", Absolute, 4, opORA)
	def(0x1D, "ORA", AbsoluteX, 4, opORA)
	def(0x19, "ORA", AbsoluteY, 4, opORA)
	def(0x01, "ORA", IndirectX, 6, opORA)
	def(0x11, "ORA", IndirectY, 5, opORA)

	def(0x2A, "ROL", Accumulator, 2, opROL)
	def(0x26, "ROL", ZeroPage, 5, opROL)
	def(0x36, "ROL", ZeroPageX, 6, opROL)
	def(0x2E, "ROL", Absolute, 6, opROL)
	def(0x3E, "ROL", AbsoluteX, 7, opROL)

	def(0x6A, "ROR", Accumulator, 2, opROR)
	def(0x66, "ROR", ZeroPage, 5, opROR)
	def(0x76, "ROR", ZeroPageX, 6, opROR)
	def(0x6E, "ROR", Absolute, 6, opROR)
	def(0x7E, "ROR", AbsoluteX, 7, opROR)

	def(0x40, "RTI", Implied, 6, opRTI)
	def(0x60, "RTS", Implied, 6, opRTS)

	def(0xE9, "SBC", Immediate, 2, opSBC)
	def(0xE5, "SBC", ZeroPage, 3, opSBC)
	def(0xF5, "SBC", ZeroPageX, 4, opSBC)
	def(0xED, "SBC", Absolute, 4, opSBC)
	def(0xFD, "SBC", AbsoluteX, 4, opSBC)
	def(0xF9, "SBC", AbsoluteY, 4, opSBC)
	def(0xE1, "SBC", IndirectX, 6, opSBC)
	def(0xF1, "SBC", IndirectY, 5, opSBC)

	def(0x85, "STA", ZeroPage, 3, opSTA)
	def(0x95, "STA", ZeroPageX, 4, opSTA)
	def(0x8D, "STA", Absolute, 4, opSTA)
	def(0x9D, "STA", AbsoluteX, 5, opSTA)
	def(0x99, "STA", AbsoluteY, 5, opSTA)
	def(0x81, "STA", IndirectX, 6, opSTA)
	def(0x91, "STA", IndirectY, 6, opSTA)

	def(0x86, "STX", ZeroPage, 3, opSTX)
	def(0x96, "STX", ZeroPageY, 4, opSTX)
	def(0x8E, "STX", Absolute, 4, opSTX)

	def(0x84, "STY", ZeroPage, 3, opSTY)
	def(0x94, "STY", ZeroPageX, 4, opSTY)
	def(0x8C, "STY", Absolute, 4, opSTY)

	def(0x18, "CLC", Implied, 2, opCLC)
	def(0x38, "SEC", Implied, 2, opSEC)
	def(0x58, "CLI", Implied, 2, opCLI)
	def(0x78, "SEI", Implied, 2, opSEI)
	def(0xB8, "CLV", Implied, 2, opCLV)
	def(0xD8, "CLD", Implied, 2, opCLD)
	def(0xF8, "SED", Implied, 2, opSED)

	def(0xAA, "TAX", Implied, 2, opTAX)
	def(0x8A, "TXA", Implied, 2, opTXA)
	def(0xCA, "DEX", Implied, 2, opDEX)
	def(0xE8, "INX", Implied, 2, opINX)
	def(0xA8, "TAY", Implied, 2, opTAY)
	def(0x98, "TYA", Implied, 2, opTYA)
	def(0x88, "DEY", Implied, 2, opDEY)
	def(0xC8, "INY", Implied, 2, opINY)

	def(0x10, "BPL", Relative, 2, opBPL)
	def(0x30, "BMI", Relative, 2, opBMI)
	def(0x50, "BVC", Relative, 2, opBVC)
	def(0x70, "BVS", Relative, 2, opBVS)
	def(0x90, "BCC", Relative, 2, opBCC)
	def(0xB0, "BCS", Relative, 2, opBCS)
	def(0xD0, "BNE", Relative, 2, opBNE)
	def(0xF0, "BEQ", Relative, 2, opBEQ)

	def(0x9A, "TXS", Implied, 2, opTXS)
	def(0xBA, "TSX", Implied, 2, opTSX)
	def(0x48, "PHA", Implied, 3, opPHA)
	def(0x68, "PLA", Implied, 4, opPLA)
	def(0x08, "PHP", Implied, 3, opPHP)
	def(0x28, "PLP", Implied, 4, opPLP)
}
