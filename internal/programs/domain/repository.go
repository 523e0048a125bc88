package domain

// ListFilter provides filtering options for listing programs.
type ListFilter struct {
	// NamePrefix filters to programs whose name starts with the prefix.
	// If empty, all programs are included.
	NamePrefix string

	// Limit restricts the number of programs returned.
	// If 0, no limit is applied.
	Limit int
}

// ProgramRepository defines the persistence interface for Program entities.
// Implementations may use SQLite, in-memory storage, or other backends.
type ProgramRepository interface {
	// Save persists a program to the repository.
	// For new programs (ID == 0), this creates a new record and sets the ID.
	// For existing programs (ID > 0), this updates the existing record.
	// Returns DuplicateNameError if another program already holds the name.
	Save(program *Program) error

	// FindByName retrieves a program by its unique name.
	// Returns ProgramNotFoundError if no matching program exists.
	FindByName(name string) (*Program, error)

	// FindByGUID retrieves a program by its GUID.
	// Returns ProgramNotFoundError if no matching program exists.
	FindByGUID(guid string) (*Program, error)

	// List retrieves programs matching the given filter criteria.
	// Results are ordered by name ascending.
	List(filter ListFilter) ([]*Program, error)

	// Delete permanently removes a program by name.
	// Returns ProgramNotFoundError if no matching program exists.
	Delete(name string) error

	// Close releases any resources held by the repository.
	Close() error
}
