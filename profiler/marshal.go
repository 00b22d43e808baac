package profiler

import "encoding/json"

// Document is the serialized form of a Database: three ordered arrays whose
// elements cross-reference each other by index. It is a total projection of
// the database's sequences, including records whose code units have since
// been destroyed.
type Document struct {
	Bytecodes    []BytecodesEntry   `json:"bytecodes"`
	Compilations []CompilationEntry `json:"compilations"`
	Events       []EventEntry       `json:"events"`
}

// BytecodesEntry is the serialized form of one bytecode record.
type BytecodesEntry struct {
	Index        int                       `json:"index"`
	Name         string                    `json:"name"`
	Hash         string                    `json:"hash"`
	Instructions []DisassembledInstruction `json:"instructions"`
}

// CompilationEntry is the serialized form of one compilation record. The
// Bytecodes field is the index of the compiled unit's bytecode record.
type CompilationEntry struct {
	Bytecodes      int      `json:"bytecodes"`
	UID            string   `json:"uid"`
	Kind           string   `json:"kind"`
	Descriptions   []string `json:"descriptions,omitempty"`
	JettisonReason string   `json:"jettison_reason,omitempty"`
}

// EventEntry is the serialized form of one event. Time is seconds since the
// Unix epoch. Bytecodes is an index into the bytecodes array; Compilation is
// an index into the compilations array and is omitted when the event had no
// compilation attribution.
type EventEntry struct {
	Time        float64 `json:"time"`
	Bytecodes   int     `json:"bytecodes"`
	Compilation *int    `json:"compilation,omitempty"`
	Summary     string  `json:"summary"`
	Detail      string  `json:"detail"`
}

// StructuredForm projects the database into a Document. The caller must
// ensure no concurrent structural mutation for the combined use of the
// returned document; in practice this is invoked at shutdown or under
// external quiescence.
func (db *Database) StructuredForm() *Document {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc := &Document{
		Bytecodes:    make([]BytecodesEntry, len(db.bytecodes)),
		Compilations: make([]CompilationEntry, len(db.compilations)),
		Events:       make([]EventEntry, len(db.events)),
	}

	for i, b := range db.bytecodes {
		instructions := make([]DisassembledInstruction, len(b.instructions))
		copy(instructions, b.instructions)
		doc.Bytecodes[i] = BytecodesEntry{
			Index:        b.index,
			Name:         b.name,
			Hash:         b.hash,
			Instructions: instructions,
		}
	}

	compilationIndex := make(map[*Compilation]int, len(db.compilations))
	for i, c := range db.compilations {
		compilationIndex[c] = i
		var descriptions []string
		if len(c.descriptions) > 0 {
			descriptions = make([]string, len(c.descriptions))
			copy(descriptions, c.descriptions)
		}
		doc.Compilations[i] = CompilationEntry{
			Bytecodes:      c.bytecodes.index,
			UID:            c.uid,
			Kind:           string(c.kind),
			Descriptions:   descriptions,
			JettisonReason: c.jettisonReason,
		}
	}

	for i, e := range db.events {
		entry := EventEntry{
			Time:      float64(e.time.UnixNano()) / 1e9,
			Bytecodes: e.bytecodes.index,
			Summary:   e.summary,
			Detail:    e.detail,
		}
		if e.compilation != nil {
			if idx, ok := compilationIndex[e.compilation]; ok {
				idx := idx
				entry.Compilation = &idx
			}
		}
		doc.Events[i] = entry
	}

	return doc
}

// ToJSON serializes the database to a UTF-8 JSON document with the top-level
// keys "bytecodes", "compilations" and "events".
func (db *Database) ToJSON() ([]byte, error) {
	return json.Marshal(db.StructuredForm())
}

// ParseDocument parses a JSON document previously produced by ToJSON or Save.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
