// Package profiler records how a bytecode runtime translated and executed its
// code units, and persists that record as JSON for post-mortem inspection.
//
// The central type is [Database]: a per-runtime-instance ledger that owns
// three append-only sequences (bytecode records, compilation records, events)
// plus lookup maps keyed by code-unit identity. The runtime calls into the
// database during normal execution, from any goroutine:
//
//   - [Database.EnsureBytecodesFor] deduplicates bytecode snapshots per unit
//   - [Database.AddCompilation] registers an optimizing compilation
//   - [Database.LogEvent] appends a timestamped, cross-referenced log entry
//   - [Database.NotifyDestruction] drops a discarded unit from the lookup maps
//
// Lookup maps track only live units; history survives unit destruction and is
// always included in the serialized output.
//
// # Persistence at process exit
//
// A database registered with [Database.RegisterSaveAtExit] is saved exactly
// once through the exit path: either when the host drains the process-wide
// registry with [SaveAllAtExit] at shutdown, or earlier when the database is
// closed with [Database.Close], whichever comes first. Go has no atexit
// primitive, so the host is expected to arrange the drain itself, typically
// with a defer in main:
//
//	db := profiler.New()
//	db.RegisterSaveAtExit("profile.json")
//	defer profiler.SaveAllAtExit()
//
// # Concurrency
//
// Each Database has its own mutation lock; the exit registry has a separate
// global lock. No lock is held across file I/O. Database locks are not
// re-entrant: a CodeUnit implementation must not call back into the same
// database from within BaselineVersion or the snapshot methods.
package profiler
