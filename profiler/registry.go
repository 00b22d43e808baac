package profiler

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// exitRegistry is the process-wide collection of databases that should be
// saved when the process shuts down. Its lock is independent of any
// database's own lock and additionally guards each registered database's
// exit-registration state (shouldSaveAtExit, atExitIndex).
type exitRegistry struct {
	mu        sync.Mutex
	databases []*Database
}

var atExitRegistry = &exitRegistry{}

// RegisterSaveAtExit arranges for the database to be saved to the given path
// when the exit registry is drained, or when the database is closed first.
// Calling it again on an already-registered database only updates the path.
func (db *Database) RegisterSaveAtExit(path string) {
	r := atExitRegistry
	r.mu.Lock()
	db.atExitPath = path
	if db.shouldSaveAtExit {
		r.mu.Unlock()
		return
	}
	db.atExitIndex = len(r.databases)
	r.databases = append(r.databases, db)
	db.shouldSaveAtExit = true
	r.mu.Unlock()

	db.logger.Debug().
		Uint64("database_id", db.id).
		Str("path", path).
		Msg("profile database registered for exit save")
}

// SaveAllAtExit drains the exit registry, saving each still-registered
// database to its registered path, most recently registered first. Go offers
// no atexit hook, so the embedding host must call this at shutdown (for
// example with a defer in main). Saves happen outside the registry lock, so
// concurrent Close calls are tolerated: each database is saved at most once
// through the exit path. Failed saves are aggregated into the returned error
// and do not stop the drain.
func SaveAllAtExit() error {
	var result error
	for {
		db, path := removeFirstAtExitDatabase()
		if db == nil {
			break
		}
		if err := db.performAtExitSave(path); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// removeFirstAtExitDatabase pops the most recently registered database from
// the registry, clearing its registered flag, or returns nil when the
// registry is empty. The save path is captured under the lock so a
// concurrent re-registration cannot redirect an in-flight save.
func removeFirstAtExitDatabase() (*Database, string) {
	r := atExitRegistry
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.databases)
	if n == 0 {
		return nil, ""
	}
	db := r.databases[n-1]
	r.databases = r.databases[:n-1]
	db.shouldSaveAtExit = false
	db.atExitIndex = -1
	return db, db.atExitPath
}

// removeFromAtExit removes the database from the registry if it is still
// registered, reporting whether a final save is owed and to which path.
// Removal is O(1): the last entry is swapped into the vacated slot.
func (db *Database) removeFromAtExit() (string, bool) {
	r := atExitRegistry
	r.mu.Lock()
	defer r.mu.Unlock()
	if !db.shouldSaveAtExit {
		return "", false
	}
	i := db.atExitIndex
	last := len(r.databases) - 1
	r.databases[i] = r.databases[last]
	r.databases[i].atExitIndex = i
	r.databases[last] = nil
	r.databases = r.databases[:last]
	db.shouldSaveAtExit = false
	db.atExitIndex = -1
	return db.atExitPath, true
}

// performAtExitSave saves to the path captured at deregistration, outside
// any lock. Failures are logged on the database's diagnostic channel;
// process shutdown proceeds regardless.
func (db *Database) performAtExitSave(path string) error {
	if err := db.Save(path); err != nil {
		db.logger.Error().
			Err(err).
			Uint64("database_id", db.id).
			Str("path", path).
			Msg("profile database exit save failed")
		return err
	}
	db.logger.Debug().
		Uint64("database_id", db.id).
		Str("path", path).
		Msg("profile database saved")
	return nil
}
