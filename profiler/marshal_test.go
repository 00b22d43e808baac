package profiler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestStructuredFormCompleteness(t *testing.T) {
	mock := clock.NewMock()
	db := New(WithClock(mock))

	unitA := &fakeUnit{name: "A"}
	unitB := &fakeUnit{name: "B"}

	recordA := db.EnsureBytecodesFor(unitA)
	db.AddCompilation(unitA, NewCompilation(recordA, CompilationParams{
		Kind:         CompilationKindOptimized,
		Descriptions: []string{"inlined callee", "hoisted bounds check"},
	}))

	mock.Add(5 * time.Second)
	db.LogEvent(unitA, "opt", "replaced on stack")
	db.NotifyDestruction(unitA)
	mock.Add(2500 * time.Millisecond)
	db.LogEvent(unitB, "base", "")

	doc := db.StructuredForm()
	require.Len(t, doc.Bytecodes, db.BytecodesCount())
	require.Len(t, doc.Compilations, db.CompilationCount())
	require.Len(t, doc.Events, db.EventCount())

	// Every cross-reference resolves to a valid index.
	for _, c := range doc.Compilations {
		require.GreaterOrEqual(t, c.Bytecodes, 0)
		require.Less(t, c.Bytecodes, len(doc.Bytecodes))
	}
	for _, e := range doc.Events {
		require.GreaterOrEqual(t, e.Bytecodes, 0)
		require.Less(t, e.Bytecodes, len(doc.Bytecodes))
		if e.Compilation != nil {
			require.GreaterOrEqual(t, *e.Compilation, 0)
			require.Less(t, *e.Compilation, len(doc.Compilations))
		}
	}

	// Mock clock starts at the Unix epoch, so timestamps are exact.
	require.Equal(t, 5.0, doc.Events[0].Time)
	require.Equal(t, 7.5, doc.Events[1].Time)
	require.NotNil(t, doc.Events[0].Compilation)
	require.Equal(t, 0, *doc.Events[0].Compilation)
	require.Nil(t, doc.Events[1].Compilation)

	// The destroyed unit's record is still projected.
	require.Equal(t, "A", doc.Bytecodes[0].Name)
	require.Equal(t, []string{"inlined callee", "hoisted bounds check"},
		doc.Compilations[0].Descriptions)
}

func TestToJSONTopLevelKeys(t *testing.T) {
	data, err := New().ToJSON()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 3)
	require.Contains(t, raw, "bytecodes")
	require.Contains(t, raw, "compilations")
	require.Contains(t, raw, "events")

	// Empty sequences serialize as empty arrays, not null.
	require.JSONEq(t, `{"bytecodes":[],"compilations":[],"events":[]}`, string(data))
}

func TestParseDocument(t *testing.T) {
	mock := clock.NewMock()
	db := New(WithClock(mock))

	unit := &fakeUnit{name: "parse-me"}
	record := db.EnsureBytecodesFor(unit)
	db.AddCompilation(unit, NewCompilation(record, CompilationParams{
		Kind:           CompilationKindBaseline,
		JettisonReason: "exception thrown",
	}))
	mock.Add(time.Second)
	db.LogEvent(unit, "jettison", "baseline code discarded")

	data, err := db.ToJSON()
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.Equal(t, db.StructuredForm(), doc)
	require.Equal(t, "exception thrown", doc.Compilations[0].JettisonReason)
	require.Equal(t, "LOAD_CONST", doc.Bytecodes[0].Instructions[0].Opcode)
}

func TestParseDocumentRejectsInvalidJSON(t *testing.T) {
	_, err := ParseDocument([]byte("{not json"))
	require.Error(t, err)
}
