package interp

import (
	"errors"
	"fmt"

	"sixtytwo/bus"
)

// AddressingMode tells the interpreter where to find the operand for an
// instruction. See https://www.nesdev.org/wiki/CPU_addressing_modes. The
// first three (Implied, Accumulator, Relative) and Indirect are resolved
// specially in Interp.Step, since they either need no memory address,
// need the raw un-redirected PC, or involve a dereference rather than a
// simple offset; the rest are resolved by resolveAddress.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Relative
	Indirect

	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndirectX
	IndirectY
	NoneAddressing
)

func modeLength(m AddressingMode) byte {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 2
	}
}

// ErrNoneAddressing marks a contract violation: NoneAddressing must never
// reach the resolver. Reaching it is a bug in the opcode table or the
// handler that dispatched here, not a recoverable runtime condition.
var ErrNoneAddressing = errors.New("interp: NoneAddressing is not a resolvable addressing mode")

// resolveAddress computes the effective address for the nine addressing
// modes that name a memory operand, given pc pointing at the operand byte
// that follows the opcode. It never mutates pc; the caller advances PC
// afterward according to the opcode's length.
func resolveAddress(b *bus.Bus, pc uint16, x, y byte, mode AddressingMode) (uint16, error) {
	switch mode {
	case Immediate:
		return pc, nil

	case ZeroPage:
		return uint16(b.Read(pc)), nil

	case ZeroPageX:
		return uint16(b.Read(pc) + x), nil // wraps mod 256

	case ZeroPageY:
		return uint16(b.Read(pc) + y), nil

	case Absolute:
		return b.Read16(pc), nil

	case AbsoluteX:
		return b.Read16(pc) + uint16(x), nil // wraps mod 65536

	case AbsoluteY:
		return b.Read16(pc) + uint16(y), nil

	case IndirectX:
		ptr := b.Read(pc) + x // wraps mod 256 before any dereference
		lo := uint16(b.Read(uint16(ptr)))
		hi := uint16(b.Read(uint16(ptr + 1))) // (ptr+1) mod 256, the mandatory quirk
		return hi<<8 | lo, nil

	case IndirectY:
		ptr := b.Read(pc)
		lo := uint16(b.Read(uint16(ptr)))
		hi := uint16(b.Read(uint16(ptr + 1))) // (ptr+1) mod 256
		base := hi<<8 | lo
		return base + uint16(y), nil // wraps mod 65536

	case NoneAddressing:
		return 0, fmt.Errorf("%w: operand fetch at pc=%#04x", ErrNoneAddressing, pc)

	default:
		return 0, fmt.Errorf("interp: addressing mode %d is not resolvable via resolveAddress", mode)
	}
}
