// Package domain provides the pure domain layer for saved programs with no
// infrastructure dependencies.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (time package only)
//   - Defines the Program entity with encapsulated state and behavior
//   - Defines the ProgramRepository interface for persistence abstraction
//   - Provides domain-specific error types
//
// The domain layer has no knowledge of infrastructure concerns (databases, file I/O, etc.).
package domain

import "time"

// Program represents a named, persisted operation chain. The chain itself is
// carried as its encoded document; encoding and decoding happen in the
// service layer so the domain stays free of codec concerns.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Program struct {
	id          int64
	guid        string
	name        string
	description string
	chain       string

	createdAt time.Time
	updatedAt time.Time
}

// NewProgram creates a new Program with the given GUID, name, and encoded
// chain document. The createdAt and updatedAt timestamps are set to the
// current time. The ID is left as zero; it will be assigned by the
// persistence layer.
func NewProgram(guid, name, chain string) *Program {
	now := time.Now()
	return &Program{
		id:          0,
		guid:        guid,
		name:        name,
		description: "",
		chain:       chain,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstituteProgram creates a Program from existing data, typically when
// hydrating from the database. All fields are provided explicitly.
func ReconstituteProgram(
	id int64,
	guid, name, description, chain string,
	createdAt, updatedAt time.Time,
) *Program {
	return &Program{
		id:          id,
		guid:        guid,
		name:        name,
		description: description,
		chain:       chain,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the database identifier for this program.
// Returns 0 for newly created programs that haven't been persisted.
func (p *Program) ID() int64 {
	return p.id
}

// GUID returns the globally unique identifier for this program.
func (p *Program) GUID() string {
	return p.guid
}

// Name returns the unique human-readable name of this program.
func (p *Program) Name() string {
	return p.name
}

// Description returns the optional free-text description of this program.
func (p *Program) Description() string {
	return p.description
}

// Chain returns the encoded chain document this program stores.
func (p *Program) Chain() string {
	return p.chain
}

// CreatedAt returns when this program was first saved.
func (p *Program) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when this program was last updated.
func (p *Program) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetName sets the unique human-readable name of this program.
func (p *Program) SetName(name string) {
	p.name = name
	p.updatedAt = time.Now()
}

// SetDescription sets the free-text description of this program.
func (p *Program) SetDescription(description string) {
	p.description = description
	p.updatedAt = time.Now()
}

// SetChain replaces the encoded chain document.
func (p *Program) SetChain(chain string) {
	p.chain = chain
	p.updatedAt = time.Now()
}

// SetID sets the database identifier for this program.
// This is typically called by the persistence layer after inserting a new program.
func (p *Program) SetID(id int64) {
	p.id = id
}
