package interp

import "fmt"

// UnknownOpcodeError is returned from Step/RunWithCallback when the fetched
// byte has no entry in the opcode table. It is always a bug in the table
// or in the loaded program; the interpreter never tries to recover from it.
type UnknownOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("interp: unrecognized opcode %#02x at pc=%#04x", e.Opcode, e.PC)
}
