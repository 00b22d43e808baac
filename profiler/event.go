package profiler

import "time"

// Event is one entry in a database's append-only log. It captures the records
// current for a code unit at log time: the bytecode record is always present,
// the compilation reference is best-effort and absent when no compilation was
// registered for the unit yet.
type Event struct {
	time        time.Time
	bytecodes   *Bytecodes
	compilation *Compilation // nil when none was registered at log time
	summary     string
	detail      string
}

// Time returns the timestamp captured when the event was logged.
func (e Event) Time() time.Time {
	return e.time
}

// Bytecodes returns the bytecode record the event is attributed to.
func (e Event) Bytecodes() *Bytecodes {
	return e.bytecodes
}

// Compilation returns the compilation record current at log time, or nil.
func (e Event) Compilation() *Compilation {
	return e.compilation
}

// Summary returns the event's fixed summary label.
func (e Event) Summary() string {
	return e.summary
}

// Detail returns the event's free-form detail text.
func (e Event) Detail() string {
	return e.detail
}
