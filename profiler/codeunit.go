package profiler

// CodeUnit is an opaque handle to one compiled unit of program logic, owned
// by the embedding runtime. The profiler never interprets a unit beyond this
// interface: handles are compared for identity and used directly as map keys,
// so implementations must be comparable (typically a pointer type).
type CodeUnit interface {
	// BaselineVersion returns the canonical, un-specialized representative of
	// this unit. Distinct handles referring to the same underlying unit (for
	// example specialized variants) must resolve to one identical handle,
	// which the profiler uses as the deduplication key.
	BaselineVersion() CodeUnit

	// ProfileName returns a display name for the unit.
	ProfileName() string

	// ProfileHash returns a stable content hash for the unit.
	ProfileHash() string

	// ProfileDisassembly returns the unit's disassembled instruction listing.
	// It is consulted once, when the unit's bytecode record is created, and
	// the result is owned by the profiler from then on.
	ProfileDisassembly() []DisassembledInstruction
}

// DisassembledInstruction is one row of a unit's disassembly snapshot.
type DisassembledInstruction struct {
	Offset   int    `json:"offset"`
	Opcode   string `json:"opcode"`
	Operands []int  `json:"operands,omitempty"`
	Comment  string `json:"comment,omitempty"`
}
