package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates program rows and inserts them in one pass.
type Builder struct {
	t        *testing.T
	db       *sql.DB
	programs []programData
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithProgram adds a program with optional configuration.
func (b *Builder) WithProgram(name string, opts ...ProgramOption) *Builder {
	program := defaultProgram(name)
	for _, opt := range opts {
		opt(&program)
	}
	b.programs = append(b.programs, program)
	return b
}

// Build inserts all accumulated data into the database.
func (b *Builder) Build() {
	b.t.Helper()
	for _, program := range b.programs {
		b.insertProgram(program)
	}
}

func (b *Builder) insertProgram(program programData) {
	b.t.Helper()
	_, err := b.db.Exec(
		`INSERT INTO programs (guid, name, description, chain, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		program.guid, program.name, program.description, program.chain,
		program.createdAt.Unix(), program.updatedAt.Unix(),
	)
	require.NoError(b.t, err)
}
