package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sixtytwo/bus"
)

// newInterp returns an Interp over a bus with a flat cartridge backing
// 0x4000-0xFFFF, so tests can load programs above 0x8000 the way a real
// cartridge would without wiring up a mapper.
func newInterp() *Interp {
	i := New(bus.NewWithFlatCartridge())
	i.Reset()
	return i
}

func TestLoadPlacesBytesAndResetVector(t *testing.T) {
	i := newInterp()
	program := []byte{0xA2, 0x0A, 0x8E, 0x00, 0x00}
	i.Load(program, 0x8000, 0x8000)
	assert.Equal(t, byte(0xA2), i.Bus.Read(0x8000))
	assert.Equal(t, byte(0x8E), i.Bus.Read(0x8002))
	assert.Equal(t, uint16(0x8000), i.Bus.Read16(0xFFFC))
}

func TestResetLoadsPCFromVectorAndClearsRegisters(t *testing.T) {
	i := New(bus.NewWithFlatCartridge())
	i.Bus.Write16(0xFFFC, 0xC000)
	i.A, i.X, i.Y = 1, 2, 3
	i.Reset()
	assert.Equal(t, uint16(0xC000), i.PC)
	assert.Equal(t, byte(0), i.A)
	assert.Equal(t, byte(0xFD), i.SP)
	assert.Equal(t, ResetFlags, i.P)
}

// TestMultiplyByThree walks the 10*3 program through RunWithCallback and
// checks that it halts on BRK with the expected final register state.
func TestMultiplyByThree(t *testing.T) {
	program := []byte{
		0xA2, 0x0A, 0x8E, 0x00, 0x00, 0xA2, 0x03, 0x8E, 0x01, 0x00,
		0xAC, 0x00, 0x00, 0xA9, 0x00, 0x18, 0x6D, 0x01, 0x00, 0x88,
		0xD0, 0xFA, 0x8D, 0x02, 0x00, 0xEA, 0xEA, 0xEA, 0x00,
	}
	i := newInterp()
	i.Load(program, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)

	assert.Equal(t, byte(30), i.A)
	assert.Equal(t, byte(3), i.X)
	assert.Equal(t, byte(0), i.Y)
	assert.Equal(t, byte(10), i.Bus.Read(0x0000))
	assert.Equal(t, byte(3), i.Bus.Read(0x0001))
	assert.Equal(t, byte(30), i.Bus.Read(0x0002))
}

func TestUnknownOpcodeReportsPCOfTheOpcodeByte(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0x02}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step()
	var unk *UnknownOpcodeError
	assert.ErrorAs(t, err, &unk)
	assert.Equal(t, byte(0x02), unk.Opcode)
	assert.Equal(t, uint16(0x8000), unk.PC)
}

// TestADCSetsCarryOverflowAndNegative reproduces the documented scenario:
// A=0x50, ADC #0x50 with carry clear yields A=0xA0, C=0, V=1, N=1.
func TestADCSetsCarryOverflowAndNegative(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0xA9, 0x50, 0x69, 0x50, 0x00}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step() // LDA #0x50
	assert.NoError(t, err)
	_, err = i.Step() // ADC #0x50
	assert.NoError(t, err)

	assert.Equal(t, byte(0xA0), i.A)
	assert.False(t, i.P.Has(FlagCarry))
	assert.True(t, i.P.Has(FlagOverflow))
	assert.True(t, i.P.Has(FlagNegative))
}

func TestSBCNoBorrowWhenCarrySet(t *testing.T) {
	i := newInterp()
	// SEC beforehand means no incoming borrow, so SBC behaves like a
	// plain subtraction and leaves Carry set (no borrow occurred).
	i.Load([]byte{0xA9, 0x05, 0x38, 0xE9, 0x03, 0x00}, 0x8000, 0x8000)
	i.Reset()

	for range 3 {
		_, err := i.Step()
		assert.NoError(t, err)
	}
	assert.Equal(t, byte(0x02), i.A)
	assert.True(t, i.P.Has(FlagCarry)) // no borrow occurred
}

func TestBITReadsZeroFromMaskedAccumulator(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x0010, 0xC0) // N and V bits set in the tested operand
	i.Load([]byte{0xA9, 0x00, 0x24, 0x10, 0x00}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step() // LDA #0x00
	assert.NoError(t, err)
	_, err = i.Step() // BIT $10
	assert.NoError(t, err)

	assert.True(t, i.P.Has(FlagZero), "A & operand == 0 must set Z")
	assert.True(t, i.P.Has(FlagOverflow))
	assert.True(t, i.P.Has(FlagNegative))
}

func TestLSRNeverSetsCarryWhenBitZeroClear(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0xA9, 0x02, 0x4A, 0x00}, 0x8000, 0x8000) // LDA #2; LSR A
	i.Reset()

	_, err := i.Step()
	assert.NoError(t, err)
	_, err = i.Step()
	assert.NoError(t, err)

	assert.Equal(t, byte(0x01), i.A)
	assert.False(t, i.P.Has(FlagCarry))
}

func TestShiftsMoveExactlyOneBit(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0xA9, 0x01, 0x0A, 0x00}, 0x8000, 0x8000) // LDA #1; ASL A
	i.Reset()

	_, err := i.Step()
	assert.NoError(t, err)
	_, err = i.Step()
	assert.NoError(t, err)

	assert.Equal(t, byte(0x02), i.A)
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	i := newInterp()
	// JSR $8005 ; BRK ; (at 8005) LDX #7 ; RTS
	i.Load([]byte{0x20, 0x05, 0x80, 0x00, 0x00, 0xA2, 0x07, 0x60}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step() // JSR $8005
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8005), i.PC)

	_, err = i.Step() // LDX #7
	assert.NoError(t, err)
	assert.Equal(t, byte(7), i.X)

	_, err = i.Step() // RTS
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8003), i.PC, "must resume at the byte after JSR")
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x02FF, 0x00)
	i.Bus.Write(0x0200, 0x80) // high byte wrongly read from 0x0200, not 0x0300
	i.Bus.Write(0x0300, 0xFF)
	i.Load([]byte{0x6C, 0xFF, 0x02}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8000), i.PC, "must reproduce the page-wrap bug, not the fixed address 0xFF00")
}

func TestBranchTakenUsesSignedOffset(t *testing.T) {
	i := newInterp()
	// LDA #0 ; BEQ +2 (over the LDA #$FF) ; BEQ -6 (back to the first BEQ).
	// Stepping one instruction at a time keeps the backward branch from
	// looping forever.
	i.Load([]byte{0xA9, 0x00, 0xF0, 0x02, 0xA9, 0xFF, 0xF0, 0xFA, 0x00}, 0x8000, 0x8000)
	i.Reset()

	_, err := i.Step() // LDA #0
	assert.NoError(t, err)
	_, err = i.Step() // BEQ +2, taken
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8006), i.PC)

	_, err = i.Step() // BEQ -6, taken: 0x8008 - 6
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8002), i.PC)
}

func TestStackPushPullRoundTrip(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68, 0x00}, 0x8000, 0x8000)
	i.Reset()
	startSP := i.SP

	_, err := i.Step() // LDA #0x42
	assert.NoError(t, err)
	_, err = i.Step() // PHA
	assert.NoError(t, err)
	assert.Equal(t, startSP-1, i.SP)

	_, err = i.Step() // LDA #0
	assert.NoError(t, err)
	_, err = i.Step() // PLA
	assert.NoError(t, err)

	assert.Equal(t, byte(0x42), i.A)
	assert.Equal(t, startSP, i.SP)
}

func TestLDAZeroPageXWrapsWithinZeroPage(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x007F, 0x42) // (0x80 + 0xFF) mod 256 == 0x7F
	i.Load([]byte{0xA2, 0xFF, 0xB5, 0x80, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x42), i.A)
}

func TestLDXZeroPageYWrapsWithinZeroPage(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x0000, 0x5A) // (0xFF + 0x01) mod 256 == 0x00
	i.Load([]byte{0xA0, 0x01, 0xB6, 0xFF, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x5A), i.X)
}

func TestLDAAbsoluteXAddsIndexWithoutWrapping(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x1001, 0x77)
	i.Load([]byte{0xA2, 0x01, 0xBD, 0x00, 0x10, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x77), i.A)
}

func TestLDAAbsoluteYAddsIndexWithoutWrapping(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x1001, 0x88)
	i.Load([]byte{0xA0, 0x01, 0xB9, 0x00, 0x10, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x88), i.A)
}

// TestSTAIndirectXWrapsPointerBeforeDereference exercises the mandatory
// zero-page-wrap quirk: the pointer byte is added to X and wrapped to a
// single page *before* either byte of the target address is read.
func TestSTAIndirectXWrapsPointerBeforeDereference(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x0003, 0x00) // (0xFE + 0x05) mod 256 == 0x03
	i.Bus.Write(0x0004, 0x01) // target address low/high -> 0x0100
	i.Load([]byte{0xA9, 0x99, 0xA2, 0x05, 0x81, 0xFE, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x99), i.Bus.Read(0x0100))
}

// TestLDAIndirectYWrapsHighByteAtZeroPageBoundary exercises the same
// pointer-wrap quirk on the read side: a pointer of 0xFF must take its
// high byte from 0x00, not 0x100.
func TestLDAIndirectYWrapsHighByteAtZeroPageBoundary(t *testing.T) {
	i := newInterp()
	i.Bus.Write(0x00FF, 0x00) // pointer low byte
	i.Bus.Write(0x0000, 0x02) // pointer high byte, wrapped from 0xFF+1
	i.Bus.Write(0x0205, 0x77) // base 0x0200 + Y(5)
	i.Load([]byte{0xA0, 0x05, 0xB1, 0xFF, 0x00}, 0x8000, 0x8000)
	i.Reset()

	err := i.RunWithCallback(nil)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x77), i.A)
}

func TestBRKHaltsTheLoopInsteadOfInterrupting(t *testing.T) {
	i := newInterp()
	i.Load([]byte{0xEA, 0x00, 0xEA}, 0x8000, 0x8000)
	i.Reset()

	steps := 0
	err := i.RunWithCallback(func(*Interp) { steps++ })
	assert.NoError(t, err)
	assert.Equal(t, 2, steps, "RunWithCallback must stop at BRK, not run past it")
}
