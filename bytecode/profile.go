package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/vmprof/op"
	"github.com/deepnoodle-ai/vmprof/profiler"
)

// Code implements the profiler's code-unit contract.
var _ profiler.CodeUnit = (*Code)(nil)

// BaselineVersion returns the generic original of this code block. For a
// baseline block it returns the block itself; for a specialized variant it
// returns the block the variant was derived from.
func (c *Code) BaselineVersion() profiler.CodeUnit {
	return c.baselineCode()
}

// ProfileName returns the name recorded on profiling snapshots.
func (c *Code) ProfileName() string {
	if c.name == "" {
		return "<anonymous>"
	}
	return c.name
}

// ProfileHash returns the content hash recorded on profiling snapshots.
func (c *Code) ProfileHash() string {
	return c.hash
}

// ProfileDisassembly decodes the code block into the row form stored on
// profiling snapshots. Each row covers one opcode and the operand slots that
// follow it; unknown opcodes decode to a zero-operand UNKNOWN row, and a
// truncated final instruction yields however many operand slots remain, so a
// snapshot can always be taken. Operand meanings are annotated where the
// code carries enough metadata to resolve them.
func (c *Code) ProfileDisassembly() []profiler.DisassembledInstruction {
	rows := make([]profiler.DisassembledInstruction, 0, len(c.instructions))
	for offset := 0; offset < len(c.instructions); {
		opcode := c.instructions[offset]
		info := op.GetInfo(opcode)
		name := info.Name
		if name == "" {
			name = fmt.Sprintf("UNKNOWN_%d", opcode)
		}
		var operands []int
		for j := 0; j < info.OperandCount && offset+1+j < len(c.instructions); j++ {
			operands = append(operands, int(c.instructions[offset+1+j]))
		}
		rows = append(rows, profiler.DisassembledInstruction{
			Offset:   offset,
			Opcode:   name,
			Operands: operands,
			Comment:  c.annotate(info.Code, operands),
		})
		offset += 1 + len(operands)
	}
	return rows
}

func (c *Code) annotate(opcode op.Code, operands []int) string {
	if len(operands) == 0 {
		return ""
	}
	index := operands[0]
	switch opcode {
	case op.LoadFast, op.StoreFast:
		if name := c.LocalNameAt(index); name != "" {
			return name
		}
		return fmt.Sprintf("local_%d", index)
	case op.LoadGlobal, op.StoreGlobal:
		return c.GlobalNameAt(index)
	case op.LoadAttr, op.StoreAttr:
		if index < len(c.names) {
			return c.names[index]
		}
	case op.LoadConst:
		if index < len(c.constants) {
			return fmt.Sprintf("%v", c.constants[index])
		}
	case op.BinaryOp:
		return op.BinaryOpType(index).String()
	case op.CompareOp:
		return op.CompareOpType(index).String()
	}
	return ""
}
