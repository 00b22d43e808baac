package profiler

// Bytecodes is an immutable snapshot of one code unit's baseline bytecode,
// captured the first time the unit is seen by a Database. Its index is the
// record's position in the database's bytecode sequence, assigned at creation
// and never reused.
type Bytecodes struct {
	index        int
	unit         CodeUnit // dedup bookkeeping only, never serialized
	name         string
	hash         string
	instructions []DisassembledInstruction
}

func newBytecodes(index int, unit CodeUnit) *Bytecodes {
	src := unit.ProfileDisassembly()
	instructions := make([]DisassembledInstruction, len(src))
	copy(instructions, src)
	return &Bytecodes{
		index:        index,
		unit:         unit,
		name:         unit.ProfileName(),
		hash:         unit.ProfileHash(),
		instructions: instructions,
	}
}

// Index returns the record's position in the owning database's bytecode
// sequence.
func (b *Bytecodes) Index() int {
	return b.index
}

// Name returns the display name captured from the code unit.
func (b *Bytecodes) Name() string {
	return b.name
}

// Hash returns the content hash captured from the code unit.
func (b *Bytecodes) Hash() string {
	return b.hash
}

// InstructionCount returns the number of disassembled instructions in the
// snapshot.
func (b *Bytecodes) InstructionCount() int {
	return len(b.instructions)
}

// InstructionAt returns the disassembled instruction at the given index.
func (b *Bytecodes) InstructionAt(index int) DisassembledInstruction {
	return b.instructions[index]
}
