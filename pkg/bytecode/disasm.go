package bytecode

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
)

const logName = "ember.bytecode"

// Disassemble returns a human-readable listing of the chunk under a
// "== name ==" header, one row per instruction.
func (c *Chunk) Disassemble(name string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("== %s ==\n", name))

	offset := 0
	for offset < len(c.code) {
		row, next := c.DisassembleInstruction(offset)
		sb.WriteString(row)
		sb.WriteString("\n")
		offset = next
	}

	return sb.String()
}

// WriteDisassembly writes the listing produced by Disassemble to w.
func (c *Chunk) WriteDisassembly(w io.Writer, name string) error {
	_, err := io.WriteString(w, c.Disassemble(name))
	return err
}

// DisassembleInstruction renders the instruction at offset and returns the
// row together with the offset of the next instruction.
//
// An undecodable byte renders as "Unknown opcode N" and the walk resumes at
// offset+1. Panics if a constant-load refers to a constant missing from the
// pool; Emit never produces such code.
func (c *Chunk) DisassembleInstruction(offset int) (string, int) {
	if offset < 0 || offset >= len(c.code) {
		return "<end of code>", offset
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%04d ", offset))

	line := c.lines.LineAt(offset)
	if offset > 0 && line == c.lines.LineAt(offset-1) {
		sb.WriteString("   | ")
	} else {
		sb.WriteString(fmt.Sprintf("%4d ", line))
	}

	b := c.code[offset]
	op, err := DecodeOpcode(b)
	if err != nil {
		commonlog.GetLogger(logName).Warningf("disassemble: offset %04d: %s", offset, err)
		sb.WriteString(fmt.Sprintf("Unknown opcode %d", b))
		return sb.String(), offset + 1
	}

	switch op {
	case OpConstant:
		if offset+1 >= len(c.code) {
			sb.WriteString(fmt.Sprintf("%-16s <truncated>", op))
			return sb.String(), len(c.code)
		}
		idx := c.code[offset+1]
		value, ok := c.Constant(idx)
		if !ok {
			panic(fmt.Sprintf("bytecode: %s at %04d: constant index %d out of range (pool has %d)",
				op, offset, idx, len(c.constants)))
		}
		sb.WriteString(fmt.Sprintf("%-16s %4d '%s'", op, idx, value))
		return sb.String(), offset + 2

	default:
		sb.WriteString(op.String())
		return sb.String(), offset + op.InstructionLen()
	}
}

// InstructionCount returns the number of rows a listing of the chunk has.
// Note: This walks the whole code section, so it's O(n).
func (c *Chunk) InstructionCount() int {
	count := 0
	offset := 0
	for offset < len(c.code) {
		op, err := DecodeOpcode(c.code[offset])
		if err != nil {
			offset++
		} else {
			offset += op.InstructionLen()
		}
		count++
	}
	return count
}
