// Package interp implements the MOS 6502/2A03 fetch-decode-execute loop:
// architectural state, the addressing-mode resolver, instruction
// semantics, and the opcode dispatch table. It owns no memory of its own;
// all reads and writes go through a *bus.Bus.
package interp

import "sixtytwo/bus"

// Default load parameters. cmd/sixtytwo loads at DefaultBaseAddress when
// no base address is given.
const (
	DefaultBaseAddress = 0x0600
	DefaultResetVector = 0x0600
)

// Interp is the sole architectural-state owner for one emulated 6502. It is
// created zeroed; call Reset before running a program.
type Interp struct {
	Bus *bus.Bus

	PC uint16
	A  byte
	X  byte
	Y  byte
	SP byte
	P  StatusFlags

	// curMode and curAddr are set by Step before Execute runs, and read by
	// operand/storeOperand so a single handler body can serve every
	// addressing mode a mnemonic supports (the accumulator- and
	// memory-form shifts in particular).
	curMode   AddressingMode
	curAddr   uint16
	operandPC uint16
}

// New returns an Interp wired to b. Call Reset before running a program;
// a freshly constructed Interp has all-zero registers and flags.
func New(b *bus.Bus) *Interp {
	return &Interp{Bus: b}
}

// Reset re-initializes architectural state from the reset vector at
// 0xFFFC/0xFFFD, the same power-up sequence real 6502 hardware runs; see
// https://www.nesdev.org/wiki/CPU_power_up_state.
func (i *Interp) Reset() {
	i.A, i.X, i.Y = 0, 0, 0
	i.SP = 0xFD
	i.P = ResetFlags
	i.PC = i.Bus.Read16(0xFFFC)
}

// Load copies program into the bus starting at base, then writes
// resetVector into the reset vector at 0xFFFC/0xFFFD. It does not reset
// or run the CPU; call Reset afterward.
func (i *Interp) Load(program []byte, base uint16, resetVector uint16) {
	for idx, b := range program {
		i.Bus.Write(base+uint16(idx), b)
	}
	i.Bus.Write16(0xFFFC, resetVector)
}

// Step executes exactly one instruction: fetch, decode, resolve address,
// execute, and advance PC if the handler didn't redirect it. halted
// reports whether the executed opcode was BRK (0x00).
func (i *Interp) Step() (halted bool, err error) {
	opByte := i.Bus.Read(i.PC)
	i.PC++
	pcBefore := i.PC

	desc := opcodeTable[opByte]
	if desc == nil {
		return false, &UnknownOpcodeError{Opcode: opByte, PC: pcBefore - 1}
	}

	switch desc.Mode {
	case Implied, Accumulator:
		// no operand to fetch

	case Relative:
		offset := int8(i.Bus.Read(pcBefore))
		i.curAddr = uint16(int32(pcBefore) + 1 + int32(offset))

	case Indirect:
		ptr := i.Bus.Read16(pcBefore)
		if ptr&0x00FF == 0x00FF {
			// page-wrap bug: high byte comes from the start of the
			// same page, not the next one
			lo := i.Bus.Read(ptr)
			hi := i.Bus.Read(ptr & 0xFF00)
			i.curAddr = uint16(hi)<<8 | uint16(lo)
		} else {
			i.curAddr = i.Bus.Read16(ptr)
		}

	default:
		ea, resolveErr := resolveAddress(i.Bus, pcBefore, i.X, i.Y, desc.Mode)
		if resolveErr != nil {
			return false, resolveErr
		}
		i.curAddr = ea
	}

	i.curMode = desc.Mode
	i.operandPC = pcBefore

	if err := desc.Execute(i); err != nil {
		return false, err
	}

	if i.PC == pcBefore {
		i.PC += uint16(desc.Length - 1)
	}

	return opByte == 0x00, nil
}

// RunWithCallback runs the fetch-decode-execute loop until BRK (0x00) is
// encountered or an instruction reports an error. cb is invoked exactly
// once after each completed instruction, with mutable access to i; it
// must not call RunWithCallback itself.
func (i *Interp) RunWithCallback(cb func(*Interp)) error {
	if cb == nil {
		cb = func(*Interp) {}
	}
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}
		cb(i)
		if halted {
			return nil
		}
	}
}

// operand returns the byte this instruction should act on: the
// accumulator in Accumulator mode, otherwise the byte at curAddr.
func (i *Interp) operand() byte {
	if i.curMode == Accumulator {
		return i.A
	}
	return i.Bus.Read(i.curAddr)
}

// storeOperand writes the result of a read-modify-write instruction back
// to wherever operand read it from.
func (i *Interp) storeOperand(v byte) {
	if i.curMode == Accumulator {
		i.A = v
		return
	}
	i.Bus.Write(i.curAddr, v)
}

// updateNZ sets the Zero and Negative flags from v, the way almost every
// load/transfer/arithmetic/shift instruction in
// https://www.nesdev.org/obelisk-6502-guide/reference.html ends.
func (i *Interp) updateNZ(v byte) {
	i.P = i.P.with(FlagZero, v == 0)
	i.P = i.P.with(FlagNegative, v&0x80 != 0)
}

// push writes v to the stack page (0x0100 + SP) and decrements SP,
// wrapping silently on underflow.
func (i *Interp) push(v byte) {
	i.Bus.Write(0x0100+uint16(i.SP), v)
	i.SP--
}

// pop increments SP, wrapping silently on overflow, then reads the byte
// it now points at.
func (i *Interp) pop() byte {
	i.SP++
	return i.Bus.Read(0x0100 + uint16(i.SP))
}

// push16 pushes the high byte of v, then the low byte.
func (i *Interp) push16(v uint16) {
	i.push(byte(v >> 8))
	i.push(byte(v))
}

// pop16 pops the low byte, then the high byte.
func (i *Interp) pop16() uint16 {
	lo := uint16(i.pop())
	hi := uint16(i.pop())
	return hi<<8 | lo
}
