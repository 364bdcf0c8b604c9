package bytecode

import (
	"errors"
	"fmt"
)

// ErrConstantPoolExhausted is returned when a chunk already holds
// MaxConstants values. Constant indexes are a single byte wide, so the pool
// cannot grow past that without changing the instruction format.
var ErrConstantPoolExhausted = errors.New("constant pool exhausted")

// UnknownOpcodeError reports a code byte that does not decode to any Opcode.
type UnknownOpcodeError struct {
	Byte byte
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d", e.Byte)
}
