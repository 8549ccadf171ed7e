package cpu

// AddressingMode identifies which of the 6502's operand-addressing schemes
// an opcode uses.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// addressingFunc resolves the effective operand address for one mode and
// reports whether the resolution crossed a page boundary (which can add a
// cycle on indexed reads). It also advances PC past the operand bytes.
type addressingFunc func(cpu *CPU) (uint16, bool)

var addressingModes = [...]addressingFunc{
	Implied:         addrImplied,
	Accumulator:     addrImplied,
	Immediate:       addrImmediate,
	ZeroPage:        addrZeroPage,
	ZeroPageX:       addrZeroPageX,
	ZeroPageY:       addrZeroPageY,
	Relative:        addrRelative,
	Absolute:        addrAbsolute,
	AbsoluteX:       addrAbsoluteX,
	AbsoluteY:       addrAbsoluteY,
	Indirect:        addrIndirect,
	IndexedIndirect: addrIndexedIndirect,
	IndirectIndexed: addrIndirectIndexed,
}

// resolveOperand dispatches to the addressing function for mode.
func (cpu *CPU) resolveOperand(mode AddressingMode) (uint16, bool) {
	return addressingModes[mode](cpu)
}

func addrImplied(cpu *CPU) (uint16, bool) {
	cpu.PC++
	return 0, false
}

func addrImmediate(cpu *CPU) (uint16, bool) {
	address := cpu.PC + 1
	cpu.PC += 2
	return address, false
}

func addrZeroPage(cpu *CPU) (uint16, bool) {
	address := uint16(cpu.memory.Read(cpu.PC + 1))
	cpu.PC += 2
	return address, false
}

func addrZeroPageX(cpu *CPU) (uint16, bool) {
	base := cpu.memory.Read(cpu.PC + 1)
	address := uint16((base + cpu.X) & zeroPageMask)
	cpu.PC += 2
	return address, false
}

func addrZeroPageY(cpu *CPU) (uint16, bool) {
	base := cpu.memory.Read(cpu.PC + 1)
	address := uint16((base + cpu.Y) & zeroPageMask)
	cpu.PC += 2
	return address, false
}

func addrRelative(cpu *CPU) (uint16, bool) {
	offset := int8(cpu.memory.Read(cpu.PC + 1))
	oldPC := cpu.PC + 2
	newPC := uint16(int32(oldPC) + int32(offset))
	cpu.PC = oldPC // updated again by the branch instruction itself if taken
	pageCrossed := (oldPC & pageMask) != (newPC & pageMask)
	return newPC, pageCrossed
}

func addrAbsolute(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	address := (high << 8) | low
	cpu.PC += 3
	return address, false
}

func addrAbsoluteX(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	base := (high << 8) | low
	address := base + uint16(cpu.X)
	cpu.PC += 3
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}

func addrAbsoluteY(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	base := (high << 8) | low
	address := base + uint16(cpu.Y)
	cpu.PC += 3
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}

// addrIndirect is only used by JMP and reproduces the famous page-wrap bug:
// if the pointer's low byte is $FF, the high byte is fetched from the start
// of the same page instead of rolling over into the next one.
func addrIndirect(cpu *CPU) (uint16, bool) {
	lowPtr := uint16(cpu.memory.Read(cpu.PC + 1))
	highPtr := uint16(cpu.memory.Read(cpu.PC + 2))
	ptr := (highPtr << 8) | lowPtr

	var address uint16
	if (ptr & zeroPageMask) == zeroPageMask {
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read(ptr & pageMask))
		address = (high << 8) | low
	} else {
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read(ptr + 1))
		address = (high << 8) | low
	}
	cpu.PC += 3
	return address, false
}

func addrIndexedIndirect(cpu *CPU) (uint16, bool) {
	base := cpu.memory.Read(cpu.PC + 1)
	ptr := (base + cpu.X) & zeroPageMask
	low := uint16(cpu.memory.Read(uint16(ptr)))
	high := uint16(cpu.memory.Read(uint16((ptr + 1) & zeroPageMask)))
	address := (high << 8) | low
	cpu.PC += 2
	return address, false
}

func addrIndirectIndexed(cpu *CPU) (uint16, bool) {
	ptr := uint16(cpu.memory.Read(cpu.PC + 1))
	low := uint16(cpu.memory.Read(ptr))
	high := uint16(cpu.memory.Read((ptr + 1) & zeroPageMask))
	base := (high << 8) | low
	address := base + uint16(cpu.Y)
	cpu.PC += 2
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}
