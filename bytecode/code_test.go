package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/vmprof/op"
)

func TestNewCodeImmutability(t *testing.T) {
	instructions := []op.Code{op.LoadConst, 0, op.ReturnValue}
	constants := []any{int64(42), "hello"}
	names := []string{"foo", "bar"}
	localNames := []string{"x"}
	globalNames := []string{"print"}

	code := NewCode(CodeParams{
		ID:           "test",
		Name:         "test_code",
		Instructions: instructions,
		Constants:    constants,
		Names:        names,
		LocalNames:   localNames,
		GlobalNames:  globalNames,
	})

	// Modify the original slices
	instructions[0] = op.Nil
	constants[0] = int64(99)
	names[0] = "modified"
	localNames[0] = "modified"
	globalNames[0] = "modified"

	// Verify the code was not affected by the modifications
	require.Equal(t, op.LoadConst, code.InstructionAt(0))
	require.Equal(t, int64(42), code.ConstantAt(0))
	require.Equal(t, "foo", code.NameAt(0))
	require.Equal(t, "x", code.LocalNameAt(0))
	require.Equal(t, "print", code.GlobalNameAt(0))
}

func TestCodeAccessors(t *testing.T) {
	code := NewCode(CodeParams{
		ID:           "test-id",
		Name:         "test_name",
		Instructions: []op.Code{op.LoadConst, 0, op.ReturnValue},
		Constants:    []any{int64(42), "hello", true},
		Names:        []string{"attr1", "attr2"},
		Filename:     "test.vs",
		LocalNames:   []string{"a", "b"},
		GlobalNames:  []string{"g"},
	})

	require.Equal(t, "test-id", code.ID())
	require.Equal(t, "test_name", code.Name())
	require.Equal(t, "test.vs", code.Filename())
	require.Equal(t, 3, code.InstructionCount())
	require.Equal(t, 3, code.ConstantCount())
	require.Equal(t, 2, code.NameCount())
	require.Equal(t, 2, code.LocalNameCount())
	require.Equal(t, 1, code.GlobalNameCount())
	require.Equal(t, "", code.LocalNameAt(9))
	require.Equal(t, "", code.GlobalNameAt(-1))
	require.False(t, code.IsSpecialized())
	require.Equal(t, "", code.Variant())
}

func TestNewCodeAssignsID(t *testing.T) {
	a := NewCode(CodeParams{Name: "a"})
	b := NewCode(CodeParams{Name: "b"})
	require.NotEmpty(t, a.ID())
	require.NotEmpty(t, b.ID())
	require.NotEqual(t, a.ID(), b.ID())
}

func TestSpecialize(t *testing.T) {
	code := NewCode(CodeParams{
		Name:         "hot",
		Instructions: []op.Code{op.Nil, op.ReturnValue},
	})
	variant := code.Specialize("int-args")

	require.True(t, variant.IsSpecialized())
	require.Equal(t, "int-args", variant.Variant())
	require.NotEqual(t, code.ID(), variant.ID())
	require.Equal(t, code.Hash(), variant.Hash())
	require.Same(t, code, variant.BaselineVersion())
	require.Same(t, code, code.BaselineVersion())

	// A variant of a variant still resolves to the original baseline.
	second := variant.Specialize("string-args")
	require.Same(t, code, second.BaselineVersion())
}

func TestContentHash(t *testing.T) {
	a := NewCode(CodeParams{Instructions: []op.Code{op.Nil, op.ReturnValue}})
	b := NewCode(CodeParams{Instructions: []op.Code{op.Nil, op.ReturnValue}})
	c := NewCode(CodeParams{Instructions: []op.Code{op.True, op.ReturnValue}})
	d := NewCode(CodeParams{
		Instructions: []op.Code{op.Nil, op.ReturnValue},
		Constants:    []any{int64(1)},
	})

	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
	require.NotEqual(t, a.Hash(), d.Hash())
	require.Len(t, a.Hash(), 16)
}

