// Package backend selects and constructs the persistent store from
// configuration.
package backend

// Type represents the kind of store backing the tracker.
type Type string

const (
	Memory Type = "memory"
	File   Type = "file"
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case Memory, File, SQLite:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// CleanupFunc releases the store's resources.
type CleanupFunc func() error
