package profiler

import (
	"fmt"
	"os"
)

// Save serializes the database and writes it to the given path. A failure to
// open the path is returned as an error; no partial-write recovery is
// attempted beyond propagating the write error. Save performs file I/O and is
// intended for shutdown or quiescent points, never a hot execution path.
func (db *Database) Save(path string) error {
	data, err := db.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open profile output: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write profile output: %w", err)
	}
	return f.Close()
}
