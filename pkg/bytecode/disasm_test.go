package bytecode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassembleEmpty(t *testing.T) {
	c := NewChunk()

	output := c.Disassemble("empty")

	if output != "== empty ==\n" {
		t.Errorf("Disassemble() = %q, want header only", output)
	}
}

func TestDisassembleConstantReturn(t *testing.T) {
	c := NewChunk()
	idx, err := c.AddConstant(1.2)
	if err != nil {
		t.Fatal(err)
	}
	c.AppendInstruction(OpConstant.Byte(), []byte{idx}, 123)
	c.AppendInstruction(OpReturn.Byte(), nil, 123)

	want := "== test chunk ==\n" +
		"0000  123 OP_CONSTANT         0 '1.2'\n" +
		"0002    | OP_RETURN\n"

	if got := c.Disassemble("test chunk"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleLineColumn(t *testing.T) {
	c := NewChunk()
	for _, line := range []int{1, 1, 2, 2, 10} {
		if _, err := c.EmitConstant(Value(line), line); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := c.Emit(OpReturn, 10); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"== lines ==",
		"0000    1 OP_CONSTANT         0 '1'",
		"0002    | OP_CONSTANT         1 '1'",
		"0004    2 OP_CONSTANT         2 '2'",
		"0006    | OP_CONSTANT         3 '2'",
		"0008   10 OP_CONSTANT         4 '10'",
		"0010    | OP_RETURN",
	}

	got := strings.Split(strings.TrimSuffix(c.Disassemble("lines"), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDisassembleUnknownOpcodeContinues(t *testing.T) {
	c := NewChunk()
	c.AppendInstruction(0x05, nil, 1)
	c.AppendInstruction(0xFF, nil, 1)
	c.AppendInstruction(OpReturn.Byte(), nil, 2)

	want := "== corrupt ==\n" +
		"0000    1 Unknown opcode 5\n" +
		"0001    | Unknown opcode 255\n" +
		"0002    2 OP_RETURN\n"

	if got := c.Disassemble("corrupt"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleTruncatedConstant(t *testing.T) {
	c := NewChunk()
	if _, err := c.AddConstant(7); err != nil {
		t.Fatal(err)
	}
	c.AppendInstruction(OpReturn.Byte(), nil, 1)
	c.AppendInstruction(OpConstant.Byte(), nil, 1)

	output := c.Disassemble("truncated")

	if !strings.Contains(output, "0001    | OP_CONSTANT      <truncated>\n") {
		t.Errorf("missing truncated row:\n%s", output)
	}
}

func TestDisassembleMissingConstantPanics(t *testing.T) {
	c := NewChunk()
	c.AppendInstruction(OpConstant.Byte(), []byte{3}, 1)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for constant index with no constant")
		}
	}()
	c.Disassemble("bad")
}

func TestDisassembleInstruction(t *testing.T) {
	c := NewChunk()
	if _, err := c.EmitConstant(2.5, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Emit(OpReturn, 5); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		offset int
		row    string
		next   int
	}{
		{0, "0000    4 OP_CONSTANT         0 '2.5'", 2},
		{2, "0002    5 OP_RETURN", 3},
		{3, "<end of code>", 3},
	}

	for _, tt := range tests {
		row, next := c.DisassembleInstruction(tt.offset)
		if row != tt.row {
			t.Errorf("DisassembleInstruction(%d) row = %q, want %q", tt.offset, row, tt.row)
		}
		if next != tt.next {
			t.Errorf("DisassembleInstruction(%d) next = %d, want %d", tt.offset, next, tt.next)
		}
	}
}

func TestWriteDisassembly(t *testing.T) {
	c := NewChunk()
	if _, err := c.EmitConstant(1.2, 123); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Emit(OpReturn, 123); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.WriteDisassembly(&buf, "test chunk"); err != nil {
		t.Fatalf("WriteDisassembly: %v", err)
	}
	if buf.String() != c.Disassemble("test chunk") {
		t.Errorf("WriteDisassembly output differs from Disassemble:\n%s", buf.String())
	}
}

func TestInstructionCount(t *testing.T) {
	c := NewChunk()
	if _, err := c.EmitConstant(1, 1); err != nil {
		t.Fatal(err)
	}
	c.AppendInstruction(0x10, nil, 1)
	if _, err := c.Emit(OpReturn, 1); err != nil {
		t.Fatal(err)
	}

	if got := c.InstructionCount(); got != 3 {
		t.Errorf("InstructionCount() = %d, want 3", got)
	}
}

func FuzzDisassemble(f *testing.F) {
	f.Add([]byte{0x00, 0x00, 0x01})
	f.Add([]byte{0x01, 0x07, 0x00})
	f.Add([]byte{0xFF, 0x00})

	f.Fuzz(func(t *testing.T, code []byte) {
		c := NewChunk()
		for i := 0; i < MaxConstants; i++ {
			if _, err := c.AddConstant(Value(i)); err != nil {
				t.Fatal(err)
			}
		}
		for i, b := range code {
			c.AppendInstruction(b, nil, i/3+1)
		}

		output := c.Disassemble("fuzz")
		rows := strings.Count(output, "\n") - 1
		if rows != c.InstructionCount() {
			t.Errorf("listing has %d rows, InstructionCount() = %d", rows, c.InstructionCount())
		}
	})
}
