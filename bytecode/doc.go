// Package bytecode provides immutable representations of compiled code.
//
// A [Code] is created once, by the compiler, and shared safely across
// goroutines from then on: all fields are unexported, constructors copy input
// slices, and accessors are index-based. A Code may be specialized with
// [Code.Specialize]; every specialized variant resolves back to its generic
// original through BaselineVersion, which is what the profiler uses to
// deduplicate records across variants.
//
// Code implements the profiler's CodeUnit contract, supplying the name, hash
// and disassembly snapshot that back a profiling database's bytecode records.
package bytecode
