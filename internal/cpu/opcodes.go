package cpu

// opcodeFunc is the uniform shape of every instruction body. Branch
// instructions use pageCrossed to add the extra cycle a taken branch across
// a page boundary costs; everything else ignores it.
type opcodeFunc func(cpu *CPU, address uint16, pageCrossed bool) uint8

type opcodeEntry struct {
	mnemonic string
	bytes    uint8
	cycles   uint8
	mode     AddressingMode
	run      opcodeFunc
}

// opcodeTable maps every defined 6502/2A03 opcode byte (official and the
// unofficial opcodes NES software relies on) straight to its addressing
// mode, base cycle count and instruction body. A nil run field marks a byte
// with no defined instruction.
var opcodeTable [256]opcodeEntry

func defOpcode(code uint8, mnemonic string, bytes, cycles uint8, mode AddressingMode, run opcodeFunc) {
	opcodeTable[code] = opcodeEntry{mnemonic, bytes, cycles, mode, run}
}

func init() {
	// Load/Store
	defOpcode(0xA9, "LDA", 2, 2, Immediate, (*CPU).lda)
	defOpcode(0xA5, "LDA", 2, 3, ZeroPage, (*CPU).lda)
	defOpcode(0xB5, "LDA", 2, 4, ZeroPageX, (*CPU).lda)
	defOpcode(0xAD, "LDA", 3, 4, Absolute, (*CPU).lda)
	defOpcode(0xBD, "LDA", 3, 4, AbsoluteX, (*CPU).lda)
	defOpcode(0xB9, "LDA", 3, 4, AbsoluteY, (*CPU).lda)
	defOpcode(0xA1, "LDA", 2, 6, IndexedIndirect, (*CPU).lda)
	defOpcode(0xB1, "LDA", 2, 5, IndirectIndexed, (*CPU).lda)

	defOpcode(0xA2, "LDX", 2, 2, Immediate, (*CPU).ldx)
	defOpcode(0xA6, "LDX", 2, 3, ZeroPage, (*CPU).ldx)
	defOpcode(0xB6, "LDX", 2, 4, ZeroPageY, (*CPU).ldx)
	defOpcode(0xAE, "LDX", 3, 4, Absolute, (*CPU).ldx)
	defOpcode(0xBE, "LDX", 3, 4, AbsoluteY, (*CPU).ldx)

	defOpcode(0xA0, "LDY", 2, 2, Immediate, (*CPU).ldy)
	defOpcode(0xA4, "LDY", 2, 3, ZeroPage, (*CPU).ldy)
	defOpcode(0xB4, "LDY", 2, 4, ZeroPageX, (*CPU).ldy)
	defOpcode(0xAC, "LDY", 3, 4, Absolute, (*CPU).ldy)
	defOpcode(0xBC, "LDY", 3, 4, AbsoluteX, (*CPU).ldy)

	defOpcode(0x85, "STA", 2, 3, ZeroPage, (*CPU).sta)
	defOpcode(0x95, "STA", 2, 4, ZeroPageX, (*CPU).sta)
	defOpcode(0x8D, "STA", 3, 4, Absolute, (*CPU).sta)
	defOpcode(0x9D, "STA", 3, 5, AbsoluteX, (*CPU).sta)
	defOpcode(0x99, "STA", 3, 5, AbsoluteY, (*CPU).sta)
	defOpcode(0x81, "STA", 2, 6, IndexedIndirect, (*CPU).sta)
	defOpcode(0x91, "STA", 2, 6, IndirectIndexed, (*CPU).sta)

	defOpcode(0x86, "STX", 2, 3, ZeroPage, (*CPU).stx)
	defOpcode(0x96, "STX", 2, 4, ZeroPageY, (*CPU).stx)
	defOpcode(0x8E, "STX", 3, 4, Absolute, (*CPU).stx)

	defOpcode(0x84, "STY", 2, 3, ZeroPage, (*CPU).sty)
	defOpcode(0x94, "STY", 2, 4, ZeroPageX, (*CPU).sty)
	defOpcode(0x8C, "STY", 3, 4, Absolute, (*CPU).sty)

	// Arithmetic
	defOpcode(0x69, "ADC", 2, 2, Immediate, (*CPU).adc)
	defOpcode(0x65, "ADC", 2, 3, ZeroPage, (*CPU).adc)
	defOpcode(0x75, "ADC", 2, 4, ZeroPageX, (*CPU).adc)
	defOpcode(0x6D, "ADC", 3, 4, Absolute, (*CPU).adc)
	defOpcode(0x7D, "ADC", 3, 4, AbsoluteX, (*CPU).adc)
	defOpcode(0x79, "ADC", 3, 4, AbsoluteY, (*CPU).adc)
	defOpcode(0x61, "ADC", 2, 6, IndexedIndirect, (*CPU).adc)
	defOpcode(0x71, "ADC", 2, 5, IndirectIndexed, (*CPU).adc)

	defOpcode(0xE9, "SBC", 2, 2, Immediate, (*CPU).sbc)
	defOpcode(0xEB, "SBC", 2, 2, Immediate, (*CPU).sbc) // unofficial duplicate
	defOpcode(0xE5, "SBC", 2, 3, ZeroPage, (*CPU).sbc)
	defOpcode(0xF5, "SBC", 2, 4, ZeroPageX, (*CPU).sbc)
	defOpcode(0xED, "SBC", 3, 4, Absolute, (*CPU).sbc)
	defOpcode(0xFD, "SBC", 3, 4, AbsoluteX, (*CPU).sbc)
	defOpcode(0xF9, "SBC", 3, 4, AbsoluteY, (*CPU).sbc)
	defOpcode(0xE1, "SBC", 2, 6, IndexedIndirect, (*CPU).sbc)
	defOpcode(0xF1, "SBC", 2, 5, IndirectIndexed, (*CPU).sbc)

	// Logical
	defOpcode(0x29, "AND", 2, 2, Immediate, (*CPU).and)
	defOpcode(0x25, "AND", 2, 3, ZeroPage, (*CPU).and)
	defOpcode(0x35, "AND", 2, 4, ZeroPageX, (*CPU).and)
	defOpcode(0x2D, "AND", 3, 4, Absolute, (*CPU).and)
	defOpcode(0x3D, "AND", 3, 4, AbsoluteX, (*CPU).and)
	defOpcode(0x39, "AND", 3, 4, AbsoluteY, (*CPU).and)
	defOpcode(0x21, "AND", 2, 6, IndexedIndirect, (*CPU).and)
	defOpcode(0x31, "AND", 2, 5, IndirectIndexed, (*CPU).and)

	defOpcode(0x09, "ORA", 2, 2, Immediate, (*CPU).ora)
	defOpcode(0x05, "ORA", 2, 3, ZeroPage, (*CPU).ora)
	defOpcode(0x15, "ORA", 2, 4, ZeroPageX, (*CPU).ora)
	defOpcode(0x0D, "ORA", 3, 4, Absolute, (*CPU).ora)
	defOpcode(0x1D, "ORA", 3, 4, AbsoluteX, (*CPU).ora)
	defOpcode(0x19, "ORA", 3, 4, AbsoluteY, (*CPU).ora)
	defOpcode(0x01, "ORA", 2, 6, IndexedIndirect, (*CPU).ora)
	defOpcode(0x11, "ORA", 2, 5, IndirectIndexed, (*CPU).ora)

	defOpcode(0x49, "EOR", 2, 2, Immediate, (*CPU).eor)
	defOpcode(0x45, "EOR", 2, 3, ZeroPage, (*CPU).eor)
	defOpcode(0x55, "EOR", 2, 4, ZeroPageX, (*CPU).eor)
	defOpcode(0x4D, "EOR", 3, 4, Absolute, (*CPU).eor)
	defOpcode(0x5D, "EOR", 3, 4, AbsoluteX, (*CPU).eor)
	defOpcode(0x59, "EOR", 3, 4, AbsoluteY, (*CPU).eor)
	defOpcode(0x41, "EOR", 2, 6, IndexedIndirect, (*CPU).eor)
	defOpcode(0x51, "EOR", 2, 5, IndirectIndexed, (*CPU).eor)

	// Shift/rotate
	defOpcode(0x0A, "ASL", 1, 2, Accumulator, (*CPU).aslAcc)
	defOpcode(0x06, "ASL", 2, 5, ZeroPage, (*CPU).asl)
	defOpcode(0x16, "ASL", 2, 6, ZeroPageX, (*CPU).asl)
	defOpcode(0x0E, "ASL", 3, 6, Absolute, (*CPU).asl)
	defOpcode(0x1E, "ASL", 3, 7, AbsoluteX, (*CPU).asl)

	defOpcode(0x4A, "LSR", 1, 2, Accumulator, (*CPU).lsrAcc)
	defOpcode(0x46, "LSR", 2, 5, ZeroPage, (*CPU).lsr)
	defOpcode(0x56, "LSR", 2, 6, ZeroPageX, (*CPU).lsr)
	defOpcode(0x4E, "LSR", 3, 6, Absolute, (*CPU).lsr)
	defOpcode(0x5E, "LSR", 3, 7, AbsoluteX, (*CPU).lsr)

	defOpcode(0x2A, "ROL", 1, 2, Accumulator, (*CPU).rolAcc)
	defOpcode(0x26, "ROL", 2, 5, ZeroPage, (*CPU).rol)
	defOpcode(0x36, "ROL", 2, 6, ZeroPageX, (*CPU).rol)
	defOpcode(0x2E, "ROL", 3, 6, Absolute, (*CPU).rol)
	defOpcode(0x3E, "ROL", 3, 7, AbsoluteX, (*CPU).rol)

	defOpcode(0x6A, "ROR", 1, 2, Accumulator, (*CPU).rorAcc)
	defOpcode(0x66, "ROR", 2, 5, ZeroPage, (*CPU).ror)
	defOpcode(0x76, "ROR", 2, 6, ZeroPageX, (*CPU).ror)
	defOpcode(0x6E, "ROR", 3, 6, Absolute, (*CPU).ror)
	defOpcode(0x7E, "ROR", 3, 7, AbsoluteX, (*CPU).ror)

	// Comparison
	defOpcode(0xC9, "CMP", 2, 2, Immediate, (*CPU).cmp)
	defOpcode(0xC5, "CMP", 2, 3, ZeroPage, (*CPU).cmp)
	defOpcode(0xD5, "CMP", 2, 4, ZeroPageX, (*CPU).cmp)
	defOpcode(0xCD, "CMP", 3, 4, Absolute, (*CPU).cmp)
	defOpcode(0xDD, "CMP", 3, 4, AbsoluteX, (*CPU).cmp)
	defOpcode(0xD9, "CMP", 3, 4, AbsoluteY, (*CPU).cmp)
	defOpcode(0xC1, "CMP", 2, 6, IndexedIndirect, (*CPU).cmp)
	defOpcode(0xD1, "CMP", 2, 5, IndirectIndexed, (*CPU).cmp)

	defOpcode(0xE0, "CPX", 2, 2, Immediate, (*CPU).cpx)
	defOpcode(0xE4, "CPX", 2, 3, ZeroPage, (*CPU).cpx)
	defOpcode(0xEC, "CPX", 3, 4, Absolute, (*CPU).cpx)

	defOpcode(0xC0, "CPY", 2, 2, Immediate, (*CPU).cpy)
	defOpcode(0xC4, "CPY", 2, 3, ZeroPage, (*CPU).cpy)
	defOpcode(0xCC, "CPY", 3, 4, Absolute, (*CPU).cpy)

	// Increment/decrement
	defOpcode(0xE6, "INC", 2, 5, ZeroPage, (*CPU).inc)
	defOpcode(0xF6, "INC", 2, 6, ZeroPageX, (*CPU).inc)
	defOpcode(0xEE, "INC", 3, 6, Absolute, (*CPU).inc)
	defOpcode(0xFE, "INC", 3, 7, AbsoluteX, (*CPU).inc)

	defOpcode(0xC6, "DEC", 2, 5, ZeroPage, (*CPU).dec)
	defOpcode(0xD6, "DEC", 2, 6, ZeroPageX, (*CPU).dec)
	defOpcode(0xCE, "DEC", 3, 6, Absolute, (*CPU).dec)
	defOpcode(0xDE, "DEC", 3, 7, AbsoluteX, (*CPU).dec)

	defOpcode(0xE8, "INX", 1, 2, Implied, (*CPU).inx)
	defOpcode(0xCA, "DEX", 1, 2, Implied, (*CPU).dex)
	defOpcode(0xC8, "INY", 1, 2, Implied, (*CPU).iny)
	defOpcode(0x88, "DEY", 1, 2, Implied, (*CPU).dey)

	// Transfer
	defOpcode(0xAA, "TAX", 1, 2, Implied, (*CPU).tax)
	defOpcode(0x8A, "TXA", 1, 2, Implied, (*CPU).txa)
	defOpcode(0xA8, "TAY", 1, 2, Implied, (*CPU).tay)
	defOpcode(0x98, "TYA", 1, 2, Implied, (*CPU).tya)
	defOpcode(0xBA, "TSX", 1, 2, Implied, (*CPU).tsx)
	defOpcode(0x9A, "TXS", 1, 2, Implied, (*CPU).txs)

	// Stack
	defOpcode(0x48, "PHA", 1, 3, Implied, (*CPU).pha)
	defOpcode(0x68, "PLA", 1, 4, Implied, (*CPU).pla)
	defOpcode(0x08, "PHP", 1, 3, Implied, (*CPU).php)
	defOpcode(0x28, "PLP", 1, 4, Implied, (*CPU).plp)

	// Flags
	defOpcode(0x18, "CLC", 1, 2, Implied, (*CPU).clc)
	defOpcode(0x38, "SEC", 1, 2, Implied, (*CPU).sec)
	defOpcode(0x58, "CLI", 1, 2, Implied, (*CPU).cli)
	defOpcode(0x78, "SEI", 1, 2, Implied, (*CPU).sei)
	defOpcode(0xB8, "CLV", 1, 2, Implied, (*CPU).clv)
	defOpcode(0xD8, "CLD", 1, 2, Implied, (*CPU).cld)
	defOpcode(0xF8, "SED", 1, 2, Implied, (*CPU).sed)

	// Control flow
	defOpcode(0x4C, "JMP", 3, 3, Absolute, (*CPU).jmp)
	defOpcode(0x6C, "JMP", 3, 5, Indirect, (*CPU).jmp)
	defOpcode(0x20, "JSR", 3, 6, Absolute, (*CPU).jsr)
	defOpcode(0x60, "RTS", 1, 6, Implied, (*CPU).rts)
	defOpcode(0x40, "RTI", 1, 6, Implied, (*CPU).rti)

	// Branches
	defOpcode(0x90, "BCC", 2, 2, Relative, (*CPU).bcc)
	defOpcode(0xB0, "BCS", 2, 2, Relative, (*CPU).bcs)
	defOpcode(0xD0, "BNE", 2, 2, Relative, (*CPU).bne)
	defOpcode(0xF0, "BEQ", 2, 2, Relative, (*CPU).beq)
	defOpcode(0x10, "BPL", 2, 2, Relative, (*CPU).bpl)
	defOpcode(0x30, "BMI", 2, 2, Relative, (*CPU).bmi)
	defOpcode(0x50, "BVC", 2, 2, Relative, (*CPU).bvc)
	defOpcode(0x70, "BVS", 2, 2, Relative, (*CPU).bvs)

	// Misc
	defOpcode(0x24, "BIT", 2, 3, ZeroPage, (*CPU).bit)
	defOpcode(0x2C, "BIT", 3, 4, Absolute, (*CPU).bit)
	defOpcode(0x00, "BRK", 1, 7, Implied, (*CPU).brk)

	// NOPs, official and unofficial
	defOpcode(0xEA, "NOP", 1, 2, Implied, (*CPU).nop)
	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		defOpcode(code, "NOP", 1, 2, Implied, (*CPU).nop)
	}
	for _, code := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		defOpcode(code, "NOP", 2, 2, Immediate, (*CPU).nop)
	}
	for _, code := range []uint8{0x04, 0x44, 0x64} {
		defOpcode(code, "NOP", 2, 3, ZeroPage, (*CPU).nop)
	}
	for _, code := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		defOpcode(code, "NOP", 2, 4, ZeroPageX, (*CPU).nop)
	}
	defOpcode(0x0C, "NOP", 3, 4, Absolute, (*CPU).nop)
	for _, code := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		defOpcode(code, "NOP", 3, 4, AbsoluteX, (*CPU).nop)
	}

	// Unofficial opcodes
	defOpcode(0xA7, "LAX", 2, 3, ZeroPage, (*CPU).lax)
	defOpcode(0xB7, "LAX", 2, 4, ZeroPageY, (*CPU).lax)
	defOpcode(0xAF, "LAX", 3, 4, Absolute, (*CPU).lax)
	defOpcode(0xBF, "LAX", 3, 4, AbsoluteY, (*CPU).lax)
	defOpcode(0xA3, "LAX", 2, 6, IndexedIndirect, (*CPU).lax)
	defOpcode(0xB3, "LAX", 2, 5, IndirectIndexed, (*CPU).lax)

	defOpcode(0x87, "SAX", 2, 3, ZeroPage, (*CPU).sax)
	defOpcode(0x97, "SAX", 2, 4, ZeroPageY, (*CPU).sax)
	defOpcode(0x8F, "SAX", 3, 4, Absolute, (*CPU).sax)
	defOpcode(0x83, "SAX", 2, 6, IndexedIndirect, (*CPU).sax)

	defOpcode(0xC7, "DCP", 2, 5, ZeroPage, (*CPU).dcp)
	defOpcode(0xD7, "DCP", 2, 6, ZeroPageX, (*CPU).dcp)
	defOpcode(0xCF, "DCP", 3, 6, Absolute, (*CPU).dcp)
	defOpcode(0xDF, "DCP", 3, 7, AbsoluteX, (*CPU).dcp)
	defOpcode(0xDB, "DCP", 3, 7, AbsoluteY, (*CPU).dcp)
	defOpcode(0xC3, "DCP", 2, 8, IndexedIndirect, (*CPU).dcp)
	defOpcode(0xD3, "DCP", 2, 8, IndirectIndexed, (*CPU).dcp)

	defOpcode(0xE7, "ISB", 2, 5, ZeroPage, (*CPU).isb)
	defOpcode(0xF7, "ISB", 2, 6, ZeroPageX, (*CPU).isb)
	defOpcode(0xEF, "ISB", 3, 6, Absolute, (*CPU).isb)
	defOpcode(0xFF, "ISB", 3, 7, AbsoluteX, (*CPU).isb)
	defOpcode(0xFB, "ISB", 3, 7, AbsoluteY, (*CPU).isb)
	defOpcode(0xE3, "ISB", 2, 8, IndexedIndirect, (*CPU).isb)
	defOpcode(0xF3, "ISB", 2, 8, IndirectIndexed, (*CPU).isb)

	defOpcode(0x07, "SLO", 2, 5, ZeroPage, (*CPU).slo)
	defOpcode(0x17, "SLO", 2, 6, ZeroPageX, (*CPU).slo)
	defOpcode(0x0F, "SLO", 3, 6, Absolute, (*CPU).slo)
	defOpcode(0x1F, "SLO", 3, 7, AbsoluteX, (*CPU).slo)
	defOpcode(0x1B, "SLO", 3, 7, AbsoluteY, (*CPU).slo)
	defOpcode(0x03, "SLO", 2, 8, IndexedIndirect, (*CPU).slo)
	defOpcode(0x13, "SLO", 2, 8, IndirectIndexed, (*CPU).slo)

	defOpcode(0x27, "RLA", 2, 5, ZeroPage, (*CPU).rla)
	defOpcode(0x37, "RLA", 2, 6, ZeroPageX, (*CPU).rla)
	defOpcode(0x2F, "RLA", 3, 6, Absolute, (*CPU).rla)
	defOpcode(0x3F, "RLA", 3, 7, AbsoluteX, (*CPU).rla)
	defOpcode(0x3B, "RLA", 3, 7, AbsoluteY, (*CPU).rla)
	defOpcode(0x23, "RLA", 2, 8, IndexedIndirect, (*CPU).rla)
	defOpcode(0x33, "RLA", 2, 8, IndirectIndexed, (*CPU).rla)

	defOpcode(0x47, "SRE", 2, 5, ZeroPage, (*CPU).sre)
	defOpcode(0x57, "SRE", 2, 6, ZeroPageX, (*CPU).sre)
	defOpcode(0x4F, "SRE", 3, 6, Absolute, (*CPU).sre)
	defOpcode(0x5F, "SRE", 3, 7, AbsoluteX, (*CPU).sre)
	defOpcode(0x5B, "SRE", 3, 7, AbsoluteY, (*CPU).sre)
	defOpcode(0x43, "SRE", 2, 8, IndexedIndirect, (*CPU).sre)
	defOpcode(0x53, "SRE", 2, 8, IndirectIndexed, (*CPU).sre)

	defOpcode(0x67, "RRA", 2, 5, ZeroPage, (*CPU).rra)
	defOpcode(0x77, "RRA", 2, 6, ZeroPageX, (*CPU).rra)
	defOpcode(0x6F, "RRA", 3, 6, Absolute, (*CPU).rra)
	defOpcode(0x7F, "RRA", 3, 7, AbsoluteX, (*CPU).rra)
	defOpcode(0x7B, "RRA", 3, 7, AbsoluteY, (*CPU).rra)
	defOpcode(0x63, "RRA", 2, 8, IndexedIndirect, (*CPU).rra)
	defOpcode(0x73, "RRA", 2, 8, IndirectIndexed, (*CPU).rra)
}

// --- Load/Store ---

func (cpu *CPU) lda(address uint16, _ bool) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ldx(address uint16, _ bool) uint8 {
	cpu.X = cpu.memory.Read(address)
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) ldy(address uint16, _ bool) uint8 {
	cpu.Y = cpu.memory.Read(address)
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) sta(address uint16, _ bool) uint8 {
	cpu.memory.Write(address, cpu.A)
	return 0
}

func (cpu *CPU) stx(address uint16, _ bool) uint8 {
	cpu.memory.Write(address, cpu.X)
	return 0
}

func (cpu *CPU) sty(address uint16, _ bool) uint8 {
	cpu.memory.Write(address, cpu.Y)
	return 0
}

// --- Arithmetic ---

func (cpu *CPU) adc(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	carry := uint8(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + uint16(carry)
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sbc(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address) ^ 0xFF
	carry := uint8(0)
	if cpu.C {
		carry = 1
	}
	result := uint16(cpu.A) + uint16(value) + uint16(carry)
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0
	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

// --- Logical ---

func (cpu *CPU) and(address uint16, _ bool) uint8 {
	cpu.A &= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ora(address uint16, _ bool) uint8 {
	cpu.A |= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) eor(address uint16, _ bool) uint8 {
	cpu.A ^= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

// --- Shift/rotate (memory) ---

func (cpu *CPU) asl(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x80) != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) lsr(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x01) != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) rol(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x80) != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) ror(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x01) != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

// --- Shift/rotate (accumulator) ---

func (cpu *CPU) aslAcc(_ uint16, _ bool) uint8 {
	cpu.C = (cpu.A & 0x80) != 0
	cpu.A <<= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) lsrAcc(_ uint16, _ bool) uint8 {
	cpu.C = (cpu.A & 0x01) != 0
	cpu.A >>= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rolAcc(_ uint16, _ bool) uint8 {
	oldCarry := cpu.C
	cpu.C = (cpu.A & 0x80) != 0
	cpu.A <<= 1
	if oldCarry {
		cpu.A |= 0x01
	}
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rorAcc(_ uint16, _ bool) uint8 {
	oldCarry := cpu.C
	cpu.C = (cpu.A & 0x01) != 0
	cpu.A >>= 1
	if oldCarry {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
	return 0
}

// --- Comparison ---

func (cpu *CPU) cmp(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpx(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.X - value
	cpu.C = cpu.X >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpy(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.Y - value
	cpu.C = cpu.Y >= value
	cpu.setZN(result)
	return 0
}

// --- Increment/decrement ---

func (cpu *CPU) inc(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) dec(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) inx(_ uint16, _ bool) uint8 {
	cpu.X++
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) dex(_ uint16, _ bool) uint8 {
	cpu.X--
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) iny(_ uint16, _ bool) uint8 {
	cpu.Y++
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) dey(_ uint16, _ bool) uint8 {
	cpu.Y--
	cpu.setZN(cpu.Y)
	return 0
}

// --- Transfer ---

func (cpu *CPU) tax(_ uint16, _ bool) uint8 {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txa(_ uint16, _ bool) uint8 {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tay(_ uint16, _ bool) uint8 {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) tya(_ uint16, _ bool) uint8 {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tsx(_ uint16, _ bool) uint8 {
	cpu.X = cpu.SP
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txs(_ uint16, _ bool) uint8 {
	cpu.SP = cpu.X
	return 0
}

// --- Stack ---

func (cpu *CPU) pha(_ uint16, _ bool) uint8 {
	cpu.push(cpu.A)
	return 0
}

func (cpu *CPU) pla(_ uint16, _ bool) uint8 {
	cpu.A = cpu.pop()
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) php(_ uint16, _ bool) uint8 {
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	return 0
}

func (cpu *CPU) plp(_ uint16, _ bool) uint8 {
	b := cpu.B
	cpu.SetStatusByte(cpu.pop())
	cpu.B = b // bit 4 of the pulled byte is ignored
	return 0
}

// --- Flags ---

func (cpu *CPU) clc(_ uint16, _ bool) uint8 { cpu.C = false; return 0 }
func (cpu *CPU) sec(_ uint16, _ bool) uint8 { cpu.C = true; return 0 }
func (cpu *CPU) cli(_ uint16, _ bool) uint8 { cpu.I = false; return 0 }
func (cpu *CPU) sei(_ uint16, _ bool) uint8 { cpu.I = true; return 0 }
func (cpu *CPU) clv(_ uint16, _ bool) uint8 { cpu.V = false; return 0 }
func (cpu *CPU) cld(_ uint16, _ bool) uint8 { cpu.D = false; return 0 }
func (cpu *CPU) sed(_ uint16, _ bool) uint8 { cpu.D = true; return 0 }

// --- Control flow ---

func (cpu *CPU) jmp(address uint16, _ bool) uint8 {
	cpu.PC = address
	return 0
}

func (cpu *CPU) jsr(address uint16, _ bool) uint8 {
	cpu.pushWord(cpu.PC - 1) // JSR pushes return address - 1
	cpu.PC = address
	return 0
}

func (cpu *CPU) rts(_ uint16, _ bool) uint8 {
	cpu.PC = cpu.popWord() + 1
	return 0
}

func (cpu *CPU) rti(_ uint16, _ bool) uint8 {
	b := cpu.B
	cpu.SetStatusByte(cpu.pop())
	cpu.B = b // bit 4 of the pulled byte is ignored
	cpu.PC = cpu.popWord()
	return 0
}

// --- Branches ---
// Each returns 1 extra cycle for a taken branch, plus 1 more if the branch
// crosses a page boundary; the conditions mirror the status flag tested.

func branchIf(cpu *CPU, taken bool, address uint16, pageCrossed bool) uint8 {
	if !taken {
		return 0
	}
	cpu.PC = address
	if pageCrossed {
		return 2
	}
	return 1
}

func (cpu *CPU) bcc(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, !cpu.C, address, pageCrossed)
}

func (cpu *CPU) bcs(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, cpu.C, address, pageCrossed)
}

func (cpu *CPU) bne(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, !cpu.Z, address, pageCrossed)
}

func (cpu *CPU) beq(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, cpu.Z, address, pageCrossed)
}

func (cpu *CPU) bpl(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, !cpu.N, address, pageCrossed)
}

func (cpu *CPU) bmi(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, cpu.N, address, pageCrossed)
}

func (cpu *CPU) bvc(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, !cpu.V, address, pageCrossed)
}

func (cpu *CPU) bvs(address uint16, pageCrossed bool) uint8 {
	return branchIf(cpu, cpu.V, address, pageCrossed)
}

// --- Misc ---

func (cpu *CPU) bit(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.N = (value & nFlagMask) != 0
	cpu.V = (value & vFlagMask) != 0
	cpu.Z = (cpu.A & value) == 0
	return 0
}

func (cpu *CPU) nop(_ uint16, _ bool) uint8 { return 0 }

func (cpu *CPU) brk(_ uint16, _ bool) uint8 {
	// Implied-mode addressing already advanced PC by 1 for the opcode
	// byte; BRK additionally skips a padding byte before pushing.
	cpu.PC++
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	cpu.I = true
	low := uint16(cpu.memory.Read(irqVector))
	high := uint16(cpu.memory.Read(irqVector + 1))
	cpu.PC = (high << 8) | low
	return 0
}

// --- Unofficial opcodes ---

func (cpu *CPU) lax(address uint16, _ bool) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sax(address uint16, _ bool) uint8 {
	cpu.memory.Write(address, cpu.A&cpu.X)
	return 0
}

func (cpu *CPU) dcp(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) isb(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.sbc(address, pageCrossed) // re-reads the already-incremented value
	return 0
}

func (cpu *CPU) slo(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x80) != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.A |= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rla(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x80) != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.A &= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sre(address uint16, _ bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x01) != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.A ^= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rra(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x01) != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.adc(address, pageCrossed) // re-reads the already-rotated value
	return 0
}
