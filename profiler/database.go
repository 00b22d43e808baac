package profiler

import (
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// databaseCounter assigns process-unique database IDs.
var databaseCounter uint64

// Database is a profiling ledger for one runtime instance. It owns three
// append-only sequences (bytecode records, compilations, events) together
// with lookup maps that deduplicate records for live code units.
//
// All methods are safe for concurrent use. The zero value is not usable;
// create databases with New.
type Database struct {
	id uint64

	mu             sync.Mutex
	bytecodes      []*Bytecodes
	compilations   []*Compilation
	events         []Event
	bytecodesMap   map[CodeUnit]*Bytecodes
	compilationMap map[CodeUnit]*Compilation

	clock  clock.Clock
	logger zerolog.Logger

	// compilationContextCheck guards the AddCompilation caller contract.
	// When set and returning true, AddCompilation panics.
	compilationContextCheck func() bool

	// Exit registration state, guarded by the registry lock rather than mu.
	shouldSaveAtExit bool
	atExitPath       string
	atExitIndex      int
}

// New creates an empty profiling database with a process-unique ID.
func New(opts ...Option) *Database {
	db := &Database{
		id:             atomic.AddUint64(&databaseCounter, 1),
		bytecodesMap:   map[CodeUnit]*Bytecodes{},
		compilationMap: map[CodeUnit]*Compilation{},
		clock:          clock.New(),
		logger:         zerolog.Nop(),
		atExitIndex:    -1,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// ID returns the database's process-unique numeric identifier.
func (db *Database) ID() uint64 {
	return db.id
}

// EnsureBytecodesFor returns the bytecode record for the given unit, creating
// and indexing one if this is the first reference to the unit. The unit is
// normalized via BaselineVersion first, so all specialized variants of one
// unit share a single record. Repeated calls for the same normalized unit
// return the identical record instance.
func (db *Database) EnsureBytecodesFor(unit CodeUnit) *Bytecodes {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.ensureBytecodesFor(unit)
}

// ensureBytecodesFor must be called with db.mu held.
func (db *Database) ensureBytecodesFor(unit CodeUnit) *Bytecodes {
	unit = unit.BaselineVersion()
	if bytecodes, ok := db.bytecodesMap[unit]; ok {
		return bytecodes
	}
	bytecodes := newBytecodes(len(db.bytecodes), unit)
	db.bytecodes = append(db.bytecodes, bytecodes)
	db.bytecodesMap[unit] = bytecodes
	return bytecodes
}

// AddCompilation registers a compilation record for the given unit. The
// record is appended to the compilation sequence and becomes the unit's
// current compilation, superseding any prior record in the lookup index.
// Superseded records remain in the sequence and stay serializable.
//
// The record must not be modified after this call.
func (db *Database) AddCompilation(unit CodeUnit, compilation *Compilation) {
	if check := db.compilationContextCheck; check != nil && check() {
		panic("profiler: AddCompilation called from a compilation context")
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.compilations = append(db.compilations, compilation)
	db.compilationMap[unit] = compilation
}

// NotifyDestruction informs the database that the runtime is discarding the
// given unit. The unit is dropped from both lookup maps so its identity can
// be reused, but all previously created records and events remain in the
// sequences for post-mortem analysis.
func (db *Database) NotifyDestruction(unit CodeUnit) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.bytecodesMap, unit)
	delete(db.compilationMap, unit)
}

// LogEvent appends a timestamped event for the given unit. The event is
// attributed to the unit's bytecode record (created on demand) and to its
// current compilation record, if any.
func (db *Database) LogEvent(unit CodeUnit, summary string, detail string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	bytecodes := db.ensureBytecodesFor(unit)
	compilation := db.compilationMap[unit]
	db.events = append(db.events, Event{
		time:        db.clock.Now(),
		bytecodes:   bytecodes,
		compilation: compilation,
		summary:     summary,
		detail:      detail,
	})
}

// BytecodesCount returns the number of bytecode records.
func (db *Database) BytecodesCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.bytecodes)
}

// BytecodesAt returns the bytecode record at the given index.
func (db *Database) BytecodesAt(index int) *Bytecodes {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.bytecodes[index]
}

// CompilationCount returns the number of compilation records.
func (db *Database) CompilationCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.compilations)
}

// CompilationAt returns the compilation record at the given index.
func (db *Database) CompilationAt(index int) *Compilation {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.compilations[index]
}

// EventCount returns the number of logged events.
func (db *Database) EventCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.events)
}

// EventAt returns the event at the given index.
func (db *Database) EventAt(index int) Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.events[index]
}

// Close deregisters the database from the exit registry, if registered, and
// performs its one final save. Closing an unregistered database is a no-op.
func (db *Database) Close() error {
	if path, ok := db.removeFromAtExit(); ok {
		return db.performAtExitSave(path)
	}
	return nil
}
