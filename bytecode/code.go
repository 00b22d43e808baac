package bytecode

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/deepnoodle-ai/vmprof/op"
	"github.com/gofrs/uuid"
)

// Code represents a compiled code block (module, function body, etc.).
// It is immutable after creation and safe for concurrent use.
type Code struct {
	id       string
	name     string
	variant  string // empty for the baseline version
	baseline *Code  // nil for the baseline version

	instructions []op.Code
	constants    []any
	names        []string
	filename     string
	hash         string

	localNames  []string
	globalNames []string
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	ID           string // assigned automatically when empty
	Name         string
	Instructions []op.Code
	Constants    []any
	Names        []string
	Filename     string
	LocalNames   []string
	GlobalNames  []string
}

// NewCode creates a new immutable Code from the given parameters. Input
// slices are copied so later caller mutation cannot affect the Code.
func NewCode(params CodeParams) *Code {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	code := &Code{
		id:           id,
		name:         params.Name,
		instructions: copyInstructions(params.Instructions),
		constants:    copyAny(params.Constants),
		names:        copyStrings(params.Names),
		filename:     params.Filename,
		localNames:   copyStrings(params.LocalNames),
		globalNames:  copyStrings(params.GlobalNames),
	}
	code.hash = contentHash(code)
	return code
}

// Specialize derives a variant of this code block, as produced when the
// runtime recompiles a unit for a particular calling pattern. The variant
// shares the baseline's content but has its own identity; its baseline
// version is this code's baseline version.
func (c *Code) Specialize(variant string) *Code {
	specialized := &Code{
		id:           uuid.Must(uuid.NewV4()).String(),
		name:         c.name,
		variant:      variant,
		baseline:     c.baselineCode(),
		instructions: c.instructions,
		constants:    c.constants,
		names:        c.names,
		filename:     c.filename,
		hash:         c.hash,
		localNames:   c.localNames,
		globalNames:  c.globalNames,
	}
	return specialized
}

func (c *Code) baselineCode() *Code {
	if c.baseline != nil {
		return c.baseline
	}
	return c
}

// ID returns the unique identifier for this code block.
func (c *Code) ID() string {
	return c.id
}

// Name returns the name of this code block.
func (c *Code) Name() string {
	return c.name
}

// Variant returns the specialization label, or an empty string for the
// baseline version.
func (c *Code) Variant() string {
	return c.variant
}

// IsSpecialized returns true if this code is a specialized variant.
func (c *Code) IsSpecialized() bool {
	return c.baseline != nil
}

// Hash returns a stable hash of the code's instructions and constants.
// Specialized variants share their baseline's hash.
func (c *Code) Hash() string {
	return c.hash
}

// Filename returns the source filename.
func (c *Code) Filename() string {
	return c.filename
}

// InstructionCount returns the number of instructions.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction at the given index.
func (c *Code) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// ConstantCount returns the number of constants.
func (c *Code) ConstantCount() int {
	return len(c.constants)
}

// ConstantAt returns the constant at the given index.
func (c *Code) ConstantAt(index int) any {
	return c.constants[index]
}

// NameCount returns the number of names (attribute names used in this code).
func (c *Code) NameCount() int {
	return len(c.names)
}

// NameAt returns the attribute name at the given index.
func (c *Code) NameAt(index int) string {
	return c.names[index]
}

// LocalNameCount returns the number of local variable names.
func (c *Code) LocalNameCount() int {
	return len(c.localNames)
}

// LocalNameAt returns the local variable name at the given index.
// Returns an empty string if the index is out of range.
func (c *Code) LocalNameAt(index int) string {
	if index < 0 || index >= len(c.localNames) {
		return ""
	}
	return c.localNames[index]
}

// GlobalNameCount returns the number of global variable names.
func (c *Code) GlobalNameCount() int {
	return len(c.globalNames)
}

// GlobalNameAt returns the global variable name at the given index.
// Returns an empty string if the index is out of range.
func (c *Code) GlobalNameAt(index int) string {
	if index < 0 || index >= len(c.globalNames) {
		return ""
	}
	return c.globalNames[index]
}

func contentHash(c *Code) string {
	h := xxhash.New()
	for _, instr := range c.instructions {
		var buf [2]byte
		buf[0] = byte(instr >> 8)
		buf[1] = byte(instr)
		h.Write(buf[:])
	}
	for _, constant := range c.constants {
		fmt.Fprintf(h, "%T:%v;", constant, constant)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
