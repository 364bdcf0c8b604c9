// Package bytecode holds the in-memory bytecode container for the Ember
// stack machine, together with a disassembler used to debug the encoder
// before an interpreter loop exists.
//
// # Architecture Overview
//
//   - Opcodes: a closed, densely numbered set of instruction tags with a
//     one-byte wire form. DecodeOpcode rejects any byte outside the set.
//
//   - Chunk: the instruction stream, its constant pool (float64 values,
//     addressed by a one-byte index) and a run-length encoded line table
//     mapping every code offset back to the source line that produced it.
//     A chunk only grows; nothing already written is ever changed.
//
//   - Disassembler: a read-only walk over a chunk that renders one row per
//     instruction. Undecodable bytes become an "Unknown opcode" row and the
//     walk resumes at the next byte.
//
// # Line Table
//
// Lines are stored as (length, line) runs in emission order. Each call to
// AppendInstruction adds 1+len(operands) bytes of code and the same number
// of bytes to the table, either by opening a new run or by extending the
// last one when the line repeats. The sum of all run lengths always equals
// the length of the code.
//
// # Listing Format
//
//	== test chunk ==
//	0000  123 OP_CONSTANT         0 '1.2'
//	0002    | OP_RETURN
//
// Offsets are four zero-padded digits, the line column is four characters
// wide ("   |" when the line repeats), mnemonics are padded to sixteen and
// constant indexes to four characters.
//
// Chunks are not safe for concurrent use.
package bytecode
