package profiler

import (
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Option describes a function used to configure a Database.
type Option func(*Database)

// WithClock supplies the clock used to timestamp events. By default a
// real-time clock is used; a mock clock can be supplied for testing.
func WithClock(c clock.Clock) Option {
	return func(db *Database) {
		db.clock = c
	}
}

// WithLogger supplies a logger for the database's diagnostic output, such as
// failed exit-time saves. By default all diagnostics are discarded.
func WithLogger(logger zerolog.Logger) Option {
	return func(db *Database) {
		db.logger = logger
	}
}

// WithCompilationContextCheck installs a check that guards the AddCompilation
// caller contract: AddCompilation must not be invoked from a dedicated
// compilation worker context. When the check returns true at the time of the
// call, AddCompilation panics. No check is installed by default.
func WithCompilationContextCheck(check func() bool) Option {
	return func(db *Database) {
		db.compilationContextCheck = check
	}
}
