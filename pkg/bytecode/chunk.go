package bytecode

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxConstants is the capacity of a chunk's constant pool.
// Constant indexes are encoded as a single operand byte.
const MaxConstants = 256

// Value is a runtime value. Numbers are the only kind so far.
type Value float64

// String returns the shortest decimal representation of the value.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// Chunk is a unit of compiled bytecode: the instruction stream, the constant
// pool it indexes into, and the source line of every code byte.
//
// A chunk only grows. The three series are owned by the chunk and are never
// handed out directly; accessors return copies.
type Chunk struct {
	code      []byte
	constants []Value
	lines     LineTable
}

// NewChunk creates a new empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		code:      make([]byte, 0, 64),
		constants: make([]Value, 0, 8),
	}
}

// AppendInstruction appends an opcode byte and its operand bytes as one
// group, then extends the line table by 1+len(operands) bytes for line.
// The bytes are written as given; Emit is the checked alternative.
// Returns the offset of the opcode byte.
func (c *Chunk) AppendInstruction(op byte, operands []byte, line int) int {
	offset := len(c.code)
	c.code = append(c.code, op)
	c.code = append(c.code, operands...)
	c.lines.Append(1+len(operands), line)
	return offset
}

// Emit appends a decoded instruction after checking its operands: the
// operand count must match the opcode, and a constant index must refer to a
// constant already in the pool. Returns the offset of the opcode byte.
func (c *Chunk) Emit(op Opcode, line int, operands ...byte) (int, error) {
	if !op.Valid() {
		return 0, &UnknownOpcodeError{Byte: byte(op)}
	}
	if len(operands) != op.OperandLen() {
		return 0, fmt.Errorf("%s takes %d operand bytes, got %d", op, op.OperandLen(), len(operands))
	}
	if op == OpConstant && int(operands[0]) >= len(c.constants) {
		return 0, fmt.Errorf("%s: constant index %d out of range (pool has %d)", op, operands[0], len(c.constants))
	}
	return c.AppendInstruction(op.Byte(), operands, line), nil
}

// EmitConstant adds value to the pool and emits an OpConstant loading it.
func (c *Chunk) EmitConstant(value Value, line int) (int, error) {
	idx, err := c.AddConstant(value)
	if err != nil {
		return 0, fmt.Errorf("emit constant %s: %w", value, err)
	}
	return c.Emit(OpConstant, line, idx)
}

// AddConstant appends value to the constant pool and returns its index.
// Returns ErrConstantPoolExhausted once the pool holds MaxConstants values.
func (c *Chunk) AddConstant(value Value) (byte, error) {
	if len(c.constants) >= MaxConstants {
		return 0, ErrConstantPoolExhausted
	}
	c.constants = append(c.constants, value)
	return byte(len(c.constants) - 1), nil
}

// Constant returns the constant at index, if present.
func (c *Chunk) Constant(index byte) (Value, bool) {
	if int(index) >= len(c.constants) {
		return 0, false
	}
	return c.constants[index], true
}

// LineAt returns the source line that produced the code byte at offset.
// Offsets past the end of the code return 0 ("unknown line"); this is a
// fallback, not an error.
func (c *Chunk) LineAt(offset int) int {
	return c.lines.LineAt(offset)
}

// Code returns a copy of the instruction stream.
func (c *Chunk) Code() []byte {
	code := make([]byte, len(c.code))
	copy(code, c.code)
	return code
}

// Constants returns a copy of the constant pool.
func (c *Chunk) Constants() []Value {
	consts := make([]Value, len(c.constants))
	copy(consts, c.constants)
	return consts
}

// LineRuns returns a copy of the run-length encoded line table.
func (c *Chunk) LineRuns() []LineRun {
	return c.lines.Runs()
}

// Len returns the length of the code section.
func (c *Chunk) Len() int {
	return len(c.code)
}

// ConstantCount returns the number of constants in the pool.
func (c *Chunk) ConstantCount() int {
	return len(c.constants)
}

// Validate checks the chunk's structural invariants: the line table covers
// exactly the code, every opcode decodes, every instruction has all of its
// operand bytes, and every constant index is in range. Decode failures wrap
// an *UnknownOpcodeError.
func (c *Chunk) Validate() error {
	if c.lines.Total() != len(c.code) {
		return fmt.Errorf("line table covers %d bytes, code has %d", c.lines.Total(), len(c.code))
	}
	var errs []error
	for offset := 0; offset < len(c.code); {
		op, err := DecodeOpcode(c.code[offset])
		if err != nil {
			errs = append(errs, fmt.Errorf("offset %04d: %w", offset, err))
			offset++
			continue
		}
		if offset+op.InstructionLen() > len(c.code) {
			errs = append(errs, fmt.Errorf("offset %04d: %s truncated: needs %d operand bytes, %d left",
				offset, op, op.OperandLen(), len(c.code)-offset-1))
			break
		}
		if op == OpConstant {
			if idx := c.code[offset+1]; int(idx) >= len(c.constants) {
				errs = append(errs, fmt.Errorf("offset %04d: %s: constant index %d out of range (pool has %d)",
					offset, op, idx, len(c.constants)))
			}
		}
		offset += op.InstructionLen()
	}
	return errors.Join(errs...)
}
