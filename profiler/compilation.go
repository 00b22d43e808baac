package profiler

import "github.com/gofrs/uuid"

// CompilationKind identifies the tier of a compilation pass.
type CompilationKind string

const (
	CompilationKindBaseline  CompilationKind = "baseline"
	CompilationKindOptimized CompilationKind = "optimized"
)

// Compilation describes one compilation pass for a code unit. The compiler
// constructs it, fills in its payload, and hands it to the database with
// [Database.AddCompilation]; it must not be modified after that point.
type Compilation struct {
	uid            string
	kind           CompilationKind
	bytecodes      *Bytecodes
	descriptions   []string
	jettisonReason string
}

// CompilationParams contains parameters for creating a new Compilation.
type CompilationParams struct {
	Kind CompilationKind

	// Descriptions are free-form lines describing the compiler's decisions
	// for this pass.
	Descriptions []string

	// JettisonReason records why the compiled code was discarded, if the
	// pass was invalidated before the record was handed to the database.
	JettisonReason string
}

// NewCompilation creates a Compilation for the unit described by the given
// bytecode record. A unique UID is assigned to each compilation.
func NewCompilation(bytecodes *Bytecodes, params CompilationParams) *Compilation {
	var descriptions []string
	if len(params.Descriptions) > 0 {
		descriptions = make([]string, len(params.Descriptions))
		copy(descriptions, params.Descriptions)
	}
	return &Compilation{
		uid:            uuid.Must(uuid.NewV4()).String(),
		kind:           params.Kind,
		bytecodes:      bytecodes,
		descriptions:   descriptions,
		jettisonReason: params.JettisonReason,
	}
}

// UID returns the compilation's unique identifier.
func (c *Compilation) UID() string {
	return c.uid
}

// Kind returns the compilation tier.
func (c *Compilation) Kind() CompilationKind {
	return c.kind
}

// Bytecodes returns the bytecode record for the compiled unit.
func (c *Compilation) Bytecodes() *Bytecodes {
	return c.bytecodes
}

// DescriptionCount returns the number of description lines.
func (c *Compilation) DescriptionCount() int {
	return len(c.descriptions)
}

// DescriptionAt returns the description line at the given index.
func (c *Compilation) DescriptionAt(index int) string {
	return c.descriptions[index]
}

// JettisonReason returns why the compiled code was discarded, or an empty
// string if it was not.
func (c *Compilation) JettisonReason() string {
	return c.jettisonReason
}
