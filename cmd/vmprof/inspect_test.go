package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/vmprof/profiler"
)

func fixtureDocument() *profiler.Document {
	optimized := 0
	return &profiler.Document{
		Bytecodes: []profiler.BytecodesEntry{
			{
				Index: 0,
				Name:  "main",
				Hash:  "00000000deadbeef",
				Instructions: []profiler.DisassembledInstruction{
					{Offset: 0, Opcode: "LOAD_CONST", Operands: []int{0}, Comment: "42"},
					{Offset: 2, Opcode: "RETURN_VALUE"},
				},
			},
		},
		Compilations: []profiler.CompilationEntry{
			{Bytecodes: 0, UID: "uid-1", Kind: "optimized"},
		},
		Events: []profiler.EventEntry{
			{Time: 1.5, Bytecodes: 0, Compilation: &optimized, Summary: "opt", Detail: "tiered up"},
			{Time: 2.0, Bytecodes: 0, Summary: "jettison", Detail: ""},
		},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, fixtureDocument())
	out := buf.String()
	require.Contains(t, out, "bytecodes:")
	require.Contains(t, out, "main")
	require.Contains(t, out, "optimized")
	require.Contains(t, out, "uid-1")
}

func TestPrintBytecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printBytecodes(&buf, fixtureDocument(), -1))
	out := buf.String()
	require.Contains(t, out, "LOAD_CONST")
	require.Contains(t, out, "RETURN_VALUE")
	require.Contains(t, out, "00000000deadbeef")

	require.Error(t, printBytecodes(&buf, fixtureDocument(), 5))
}

func TestPrintEvents(t *testing.T) {
	var buf bytes.Buffer
	printEvents(&buf, fixtureDocument())
	out := buf.String()
	require.Contains(t, out, "opt")
	require.Contains(t, out, "tiered up")
	require.Contains(t, out, "1970-01-01T00:00:01Z")
	// The second event has no compilation attribution.
	require.Contains(t, out, "-")
}

func TestLoadDocument(t *testing.T) {
	db := profiler.New()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, db.Save(path))

	doc, err := loadDocument(path)
	require.NoError(t, err)
	require.Empty(t, doc.Bytecodes)

	_, err = loadDocument(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = loadDocument(bad)
	require.Error(t, err)
}
