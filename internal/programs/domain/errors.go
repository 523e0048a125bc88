package domain

import "fmt"

// ProgramNotFoundError indicates no program matched the lookup.
type ProgramNotFoundError struct {
	Name string
	GUID string
}

// Error implements the error interface.
func (e *ProgramNotFoundError) Error() string {
	if e.GUID != "" {
		return fmt.Sprintf("program with guid %q not found", e.GUID)
	}
	return fmt.Sprintf("program %q not found", e.Name)
}

// DuplicateNameError indicates a program name is already taken.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("program %q already exists", e.Name)
}
