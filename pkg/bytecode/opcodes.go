package bytecode

import "fmt"

// Opcode represents a bytecode instruction.
// Values are dense and start at zero in declaration order; the byte written
// to the code stream is the opcode value itself.
type Opcode byte

const (
	OpConstant Opcode = iota // Push constant from pool: OpConstant <index:u8>
	OpReturn                 // Return from the current chunk

	opcodeLimit // first byte value with no opcode
)

// OpcodeInfo provides metadata about each opcode for debugging and validation.
type OpcodeInfo struct {
	Name       string // Mnemonic shown in listings
	OperandLen int    // Number of operand bytes following the opcode
}

// opcodeInfoTable is indexed by opcode value.
var opcodeInfoTable = [opcodeLimit]OpcodeInfo{
	OpConstant: {"OP_CONSTANT", 1},
	OpReturn:   {"OP_RETURN", 0},
}

// DecodeOpcode converts a byte read from the code stream into an Opcode.
// Bytes outside the declared range yield an *UnknownOpcodeError.
func DecodeOpcode(b byte) (Opcode, error) {
	if b >= byte(opcodeLimit) {
		return 0, &UnknownOpcodeError{Byte: b}
	}
	return Opcode(b), nil
}

// Byte returns the wire form of the opcode.
func (op Opcode) Byte() byte {
	return byte(op)
}

// Valid reports whether op is one of the declared opcodes.
func (op Opcode) Valid() bool {
	return op < opcodeLimit
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns an OpcodeInfo named "UNKNOWN(0xNN)" if the opcode is not declared.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if op.Valid() {
		return opcodeInfoTable[op]
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// OperandLen returns the number of operand bytes for this opcode.
func (op Opcode) OperandLen() int {
	return GetOpcodeInfo(op).OperandLen
}

// InstructionLen returns the total length of an instruction (1 + operand bytes).
func (op Opcode) InstructionLen() int {
	return 1 + op.OperandLen()
}

// AllOpcodes returns every declared opcode in encoding order.
func AllOpcodes() []Opcode {
	ops := make([]Opcode, 0, opcodeLimit)
	for op := Opcode(0); op < opcodeLimit; op++ {
		ops = append(ops, op)
	}
	return ops
}

// OpcodeCount returns the number of declared opcodes.
func OpcodeCount() int {
	return int(opcodeLimit)
}
